package entity

// AuditLog represents an admin workflow command trail entry
type AuditLog struct {
	ID        string      `json:"id"`
	Action    string      `json:"action"`
	Entity    string      `json:"entity"`
	EntityID  string      `json:"entityId"`
	Actor     string      `json:"actor,omitempty"`
	OldValue  interface{} `json:"oldValue,omitempty"`
	NewValue  interface{} `json:"newValue,omitempty"`
	CreatedAt string      `json:"createdAt,omitempty"`
}

// Common audit actions
const (
	AuditActionAppointmentStatus = "appointment.status"
	AuditActionAppointmentDelete = "appointment.delete"
	AuditActionMessageStatus     = "message.status"
	AuditActionDoctorCreate      = "doctor.create"
	AuditActionDoctorDelete      = "doctor.delete"
	AuditActionPatientCreate     = "patient.create"
)
