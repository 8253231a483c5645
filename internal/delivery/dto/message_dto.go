package dto

// CreateMessageRequest is the contact form. Phone is the local number; the
// country code defaults to the site setting.
type CreateMessageRequest struct {
	FirstName   string `json:"firstName" validate:"required,min=1"`
	LastName    string `json:"lastName" validate:"required,min=1"`
	Email       string `json:"email" validate:"required,email"`
	CountryCode string `json:"countryCode" validate:"omitempty,max=5"`
	Phone       string `json:"phone" validate:"required,phone"`
	Subject     string `json:"subject" validate:"required"`
	Message     string `json:"message" validate:"required,min=10"`
}

type UpdateMessageStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=unread read"`
}

type CreatedResponse struct {
	ID                         string `json:"id"`
	ConfirmationDisplaySeconds int    `json:"confirmation_display_seconds"`
}
