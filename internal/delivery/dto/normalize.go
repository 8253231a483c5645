package dto

import "strings"

// trimAll strips surrounding whitespace from every field in place.
func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// Normalize trims the free-text fields. Handlers call it before validation so
// that whitespace-only input fails "required".
func (r *CreateAppointmentRequest) Normalize() {
	trimAll(&r.Name, &r.Email, &r.Phone, &r.Department, &r.Date, &r.Time, &r.Reason, &r.Payment)
}

func (r *CreateMessageRequest) Normalize() {
	trimAll(&r.FirstName, &r.LastName, &r.Email, &r.CountryCode, &r.Phone, &r.Subject, &r.Message)
}

func (r *CreateDoctorRequest) Normalize() {
	trimAll(&r.Name, &r.Specialty, &r.Email, &r.Phone, &r.Qualifications, &r.Experience, &r.Department)
}

func (r *CreatePatientRequest) Normalize() {
	trimAll(&r.FirstName, &r.LastName, &r.Email, &r.Phone, &r.DateOfBirth, &r.Address, &r.EmergencyContact)
}

func (r *PatientCredentialsRequest) Normalize() {
	trimAll(&r.Name)
}

func (r *LoginRequest) Normalize() {
	trimAll(&r.Email)
}
