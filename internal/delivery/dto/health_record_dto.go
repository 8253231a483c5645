package dto

import "hospital-portal/internal/domain/entity"

type UploadHealthRecordRequest struct {
	File *UploadedFile `validate:"required"`
}

type HealthRecordListResponse struct {
	Records []entity.HealthRecord `json:"records"`
	Total   int                   `json:"total"`
}
