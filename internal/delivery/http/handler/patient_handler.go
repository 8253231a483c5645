package handler

import (
	"encoding/json"
	"net/http"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/delivery/http/middleware"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/response"
	"hospital-portal/pkg/validator"
)

type PatientHandler struct {
	patientUsecase      usecase.PatientUsecase
	authUsecase         usecase.AuthUsecase
	healthRecordUsecase usecase.HealthRecordUsecase
	validator           *validator.CustomValidator
}

func NewPatientHandler(
	patientUsecase usecase.PatientUsecase,
	authUsecase usecase.AuthUsecase,
	healthRecordUsecase usecase.HealthRecordUsecase,
	validator *validator.CustomValidator,
) *PatientHandler {
	return &PatientHandler{
		patientUsecase:      patientUsecase,
		authUsecase:         authUsecase,
		healthRecordUsecase: healthRecordUsecase,
		validator:           validator,
	}
}

// CreatePatient registers a patient from the admin dashboard
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	req.Normalize()
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	created, err := h.patientUsecase.CreatePatient(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to register patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered successfully", created)
}

// GetPortal returns the signed-in patient's portal summary
func (h *PatientHandler) GetPortal(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.GetSubjectFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	account, err := h.authUsecase.GetPatientAccount(r.Context(), subject)
	if err != nil {
		if err == usecase.ErrAccountNotFound {
			response.NotFound(w, "Account not found")
			return
		}
		response.InternalServerError(w, "Failed to get account")
		return
	}

	records, err := h.healthRecordUsecase.CountRecords(r.Context(), subject)
	if err != nil {
		response.InternalServerError(w, "Failed to get health records")
		return
	}

	response.Success(w, http.StatusOK, "Portal retrieved successfully", dto.PortalResponse{
		AccountID:     account.ID.String(),
		Email:         account.Email,
		HealthRecords: records,
	})
}
