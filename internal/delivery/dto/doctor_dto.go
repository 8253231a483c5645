package dto

import "hospital-portal/internal/domain/entity"

// CreateDoctorRequest is the admin doctor registration form.
type CreateDoctorRequest struct {
	Name           string `json:"name" validate:"required,min=2"`
	Specialty      string `json:"specialty" validate:"required,min=2"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,phone"`
	Qualifications string `json:"qualifications" validate:"required,min=5"`
	Experience     string `json:"experience" validate:"required"`
	Department     string `json:"department" validate:"required"`
}

type DoctorListResponse struct {
	Doctors     []entity.Doctor `json:"doctors"`
	Total       int             `json:"total"`
	HasMore     bool            `json:"has_more"`
	Specialties []string        `json:"specialties"`
}
