package dto

// CreatePatientRequest is the admin patient registration form.
type CreatePatientRequest struct {
	FirstName        string `json:"firstName" validate:"required,min=2"`
	LastName         string `json:"lastName" validate:"required,min=2"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required,phone"`
	DateOfBirth      string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Address          string `json:"address" validate:"required,min=5"`
	EmergencyContact string `json:"emergencyContact" validate:"required,phone"`
}
