package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/service"
	"hospital-portal/pkg/response"
	"hospital-portal/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const streamPingInterval = 25 * time.Second

// DashboardController is the admin workflow surface used by the handler.
type DashboardController interface {
	View() service.DashboardView
	SetAppointmentStatus(ctx context.Context, id string, status entity.AppointmentStatus) error
	SetMessageStatus(ctx context.Context, id string, status entity.MessageStatus) error
	DeleteAppointment(ctx context.Context, id string) error
	DeleteDoctor(ctx context.Context, id string) error
	AppointmentLink(ctx context.Context, id string) (string, error)
	MessageLink(ctx context.Context, id string) (string, error)
}

// LiveDashboard is a controller owned by one stream connection.
type LiveDashboard interface {
	OnChange(fn func(service.DashboardView))
	Start(ctx context.Context) error
	View() service.DashboardView
	Close()
}

type DashboardHandler struct {
	dashboard DashboardController
	newLive   func() LiveDashboard
	validator *validator.CustomValidator
	log       *logrus.Logger
}

func NewDashboardHandler(dashboard DashboardController, newLive func() LiveDashboard, validator *validator.CustomValidator, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		newLive:   newLive,
		validator: validator,
		log:       log,
	}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", h.dashboard.View())
}

// Stream pushes a "dashboard" event with the full view after every change.
// The connection owns its own controller, closed when the client goes away.
func (h *DashboardHandler) Stream(w http.ResponseWriter, r *http.Request) {
	// Holds only the latest view; older ones are superseded.
	updates := make(chan service.DashboardView, 1)
	live := h.newLive()
	live.OnChange(func(view service.DashboardView) {
		for {
			select {
			case updates <- view:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	})

	if err := live.Start(r.Context()); err != nil {
		h.log.Warnf("Failed to start dashboard stream: %+v", err)
		response.InternalServerError(w, "Failed to open dashboard stream")
		return
	}
	defer live.Close()

	stream, err := response.NewEventStream(w)
	if err != nil {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	if err := stream.Send("dashboard", live.View()); err != nil {
		return
	}

	ticker := time.NewTicker(streamPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case view := <-updates:
			if err := stream.Send("dashboard", view); err != nil {
				return
			}
		case <-ticker.C:
			if err := stream.Ping(); err != nil {
				return
			}
		}
	}
}

func (h *DashboardHandler) SetAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err := h.dashboard.SetAppointmentStatus(r.Context(), mux.Vars(r)["id"], entity.AppointmentStatus(req.Status))
	if err != nil {
		h.writeCommandError(w, err, "Appointment not found", "Failed to update appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", nil)
}

func (h *DashboardHandler) SetMessageStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateMessageStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err := h.dashboard.SetMessageStatus(r.Context(), mux.Vars(r)["id"], entity.MessageStatus(req.Status))
	if err != nil {
		h.writeCommandError(w, err, "Message not found", "Failed to update message status")
		return
	}

	response.Success(w, http.StatusOK, "Message status updated successfully", nil)
}

func (h *DashboardHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.DeleteAppointment(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeCommandError(w, err, "Appointment not found", "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *DashboardHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.DeleteDoctor(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeCommandError(w, err, "Doctor not found", "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

func (h *DashboardHandler) AppointmentWhatsApp(w http.ResponseWriter, r *http.Request) {
	url, err := h.dashboard.AppointmentLink(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeCommandError(w, err, "Appointment not found", "Failed to compose WhatsApp link")
		return
	}

	response.Success(w, http.StatusOK, "WhatsApp link composed successfully", dto.WhatsAppLinkResponse{URL: url})
}

func (h *DashboardHandler) MessageWhatsApp(w http.ResponseWriter, r *http.Request) {
	url, err := h.dashboard.MessageLink(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeCommandError(w, err, "Message not found", "Failed to compose WhatsApp link")
		return
	}

	response.Success(w, http.StatusOK, "WhatsApp link composed successfully", dto.WhatsAppLinkResponse{URL: url})
}

func (h *DashboardHandler) writeCommandError(w http.ResponseWriter, err error, notFound, failed string) {
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(w, "Invalid status")
	case errors.Is(err, service.ErrStaticDoctor):
		response.Error(w, http.StatusConflict, "Built-in doctors cannot be deleted", nil)
	case errors.Is(err, repository.ErrDocumentNotFound):
		response.NotFound(w, notFound)
	default:
		response.InternalServerError(w, failed)
	}
}
