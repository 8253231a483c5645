package dto

import (
	"io"

	"hospital-portal/internal/domain/entity"
)

// CreateAppointmentRequest is the booking form.
type CreateAppointmentRequest struct {
	Name       string `json:"name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,phone"`
	Department string `json:"department" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required"`
	Reason     string `json:"reason" validate:"required,min=10"`
	Payment    string `json:"payment" validate:"omitempty,oneof='Pay at Hospital' 'Pay Now'"`

	// PaymentScreenshot is set from a multipart upload, never from JSON.
	PaymentScreenshot *UploadedFile `json:"-" validate:"-"`
}

// UploadedFile is a file received in a multipart form.
type UploadedFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed"`
}

type AppointmentResponse struct {
	ID                         string                   `json:"id"`
	Status                     entity.AppointmentStatus `json:"status"`
	Payment                    string                   `json:"payment"`
	PaymentScreenshot          string                   `json:"payment_screenshot,omitempty"`
	ConfirmationDisplaySeconds int                      `json:"confirmation_display_seconds"`
}

type WhatsAppLinkResponse struct {
	URL string `json:"url"`
}

type PaymentQRResponse struct {
	QRCodeURL string `json:"qr_code_url"`
	Payee     string `json:"payee"`
}
