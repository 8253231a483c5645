package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/service"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/response"
	"hospital-portal/pkg/validator"

	"github.com/gorilla/mux"
)

// DirectorySource lists the visitor-facing doctors.
type DirectorySource interface {
	Doctors() []entity.Doctor
	Doctor(id string) (entity.Doctor, bool)
}

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	directory     DirectorySource
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, directory DirectorySource, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		directory:     directory,
		validator:     validator,
	}
}

// GetAllDoctors lists the directory filtered by ?search=, ?specialty= and ?show_all=.
func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	showAll, _ := strconv.ParseBool(query.Get("show_all"))

	view := service.DirectoryView{
		Search:    query.Get("search"),
		Specialty: query.Get("specialty"),
		ShowAll:   showAll,
	}
	doctors, total := view.Visible(h.directory.Doctors())

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", dto.DoctorListResponse{
		Doctors:     doctors,
		Total:       total,
		HasMore:     total > len(doctors),
		Specialties: entity.Specialties,
	})
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, ok := h.directory.Doctor(mux.Vars(r)["id"])
	if !ok {
		response.NotFound(w, "Doctor not found")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	req.Normalize()
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	created, err := h.doctorUsecase.CreateDoctor(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to add doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor added successfully", created)
}
