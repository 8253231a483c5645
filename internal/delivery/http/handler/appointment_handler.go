package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/response"
	"hospital-portal/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
	paymentQR          dto.PaymentQRResponse
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator, paymentQR dto.PaymentQRResponse) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
		paymentQR:          paymentQR,
	}
}

// CreateAppointment handles the booking form
// @Summary Book an appointment
// @Description JSON body, or multipart/form-data with a payment_screenshot file for "Pay Now"
// @Tags Appointments
// @Accept json,mpfd
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Booking"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest

	if isMultipart(r) {
		r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid multipart body", nil)
			return
		}
		defer r.MultipartForm.RemoveAll()

		req = dto.CreateAppointmentRequest{
			Name:       r.FormValue("name"),
			Email:      r.FormValue("email"),
			Phone:      r.FormValue("phone"),
			Department: r.FormValue("department"),
			Date:       r.FormValue("date"),
			Time:       r.FormValue("time"),
			Reason:     r.FormValue("reason"),
			Payment:    r.FormValue("payment"),
		}

		file, release, err := formFile(r, "payment_screenshot")
		defer release()
		switch {
		case err == nil:
			req.PaymentScreenshot = file
		case errors.Is(err, errMissingFile):
		default:
			response.Error(w, http.StatusBadRequest, "Invalid payment screenshot", nil)
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	req.Normalize()
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPaymentProofRequired):
			response.ValidationError(w, map[string]string{"payment_screenshot": "payment screenshot is required for Pay Now"})
		case errors.Is(err, usecase.ErrFileTooLarge):
			response.Error(w, http.StatusRequestEntityTooLarge, "File size should be less than 5MB", nil)
		case errors.Is(err, usecase.ErrUnsupportedFileType):
			response.Error(w, http.StatusUnsupportedMediaType, "Only PDF, JPEG and PNG files are accepted", nil)
		case errors.Is(err, usecase.ErrUploadFailed):
			response.Error(w, http.StatusBadGateway, "Failed to upload payment screenshot", nil)
		default:
			response.InternalServerError(w, "Failed to book appointment, please retry or contact us directly")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment requested successfully", appointment)
}

// PaymentQR returns the static payment QR code shown for "Pay Now".
func (h *AppointmentHandler) PaymentQR(w http.ResponseWriter, r *http.Request) {
	if h.paymentQR.QRCodeURL == "" {
		response.NotFound(w, "Payment QR code is not configured")
		return
	}
	response.Success(w, http.StatusOK, "Payment QR code retrieved successfully", h.paymentQR)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
