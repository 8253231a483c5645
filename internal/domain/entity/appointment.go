package entity

// AppointmentStatus is the workflow field of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
)

// IsValid reports whether s belongs to the closed status set.
func (s AppointmentStatus) IsValid() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

// Payment methods offered by the booking form.
const (
	PaymentAtHospital = "Pay at Hospital"
	PaymentNow        = "Pay Now"
)

// PaymentRequiresProof reports whether the payment method needs a screenshot upload.
func PaymentRequiresProof(payment string) bool {
	return payment == PaymentNow
}

// Appointment represents a booked visit
type Appointment struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	Department        string            `json:"department"`
	Date              string            `json:"date"`
	Time              string            `json:"time"`
	Reason            string            `json:"reason"`
	Payment           string            `json:"payment,omitempty"`
	PaymentScreenshot string            `json:"paymentScreenshot,omitempty"`
	Status            AppointmentStatus `json:"status"`
	CreatedAt         string            `json:"createdAt,omitempty"`
	UpdatedAt         string            `json:"updatedAt,omitempty"`
}

// IsPending checks if appointment is awaiting confirmation
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsConfirmed checks if appointment is confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}
