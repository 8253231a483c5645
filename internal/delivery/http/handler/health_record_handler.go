package handler

import (
	"errors"
	"net/http"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/response"

	"github.com/gorilla/mux"
)

type HealthRecordHandler struct {
	healthRecordUsecase usecase.HealthRecordUsecase
}

func NewHealthRecordHandler(healthRecordUsecase usecase.HealthRecordUsecase) *HealthRecordHandler {
	return &HealthRecordHandler{
		healthRecordUsecase: healthRecordUsecase,
	}
}

// UploadRecord stores the multipart "file" field as a health record.
func (h *HealthRecordHandler) UploadRecord(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart body", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, release, err := formFile(r, "file")
	defer release()
	if err != nil {
		if errors.Is(err, errMissingFile) {
			response.ValidationError(w, map[string]string{"file": "file is required"})
			return
		}
		response.Error(w, http.StatusBadRequest, "Invalid file", nil)
		return
	}

	record, err := h.healthRecordUsecase.UploadRecord(r.Context(), &dto.UploadHealthRecordRequest{File: file})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrFileTooLarge):
			response.Error(w, http.StatusRequestEntityTooLarge, "File size should be less than 5MB", nil)
		case errors.Is(err, usecase.ErrUnsupportedFileType):
			response.Error(w, http.StatusUnsupportedMediaType, "Only PDF, JPEG and PNG files are accepted", nil)
		case errors.Is(err, usecase.ErrUploadFailed):
			response.Error(w, http.StatusBadGateway, "Failed to upload file", nil)
		default:
			response.InternalServerError(w, "Failed to save health record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Health record uploaded successfully", record)
}

func (h *HealthRecordHandler) GetMyRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.healthRecordUsecase.GetMyRecords(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get health records")
		return
	}

	response.Success(w, http.StatusOK, "Health records retrieved successfully", records)
}

func (h *HealthRecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	err := h.healthRecordUsecase.DeleteRecord(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrHealthRecordNotFound:
			response.NotFound(w, "Health record not found")
		case usecase.ErrHealthRecordNotOwned:
			response.Forbidden(w, "Health record does not belong to you")
		default:
			response.InternalServerError(w, "Failed to delete health record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Health record deleted successfully", nil)
}
