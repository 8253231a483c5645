package dto

import "hospital-portal/internal/domain/entity"

type AuditLogListResponse struct {
	Logs  []entity.AuditLog `json:"logs"`
	Total int               `json:"total"`
}
