package dto

// Request DTOs

// PatientCredentialsRequest signs a patient up or in. Name may be a bare name
// or an email address.
type PatientCredentialsRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Role         string `json:"role"`
}

type PortalResponse struct {
	AccountID     string `json:"account_id"`
	Email         string `json:"email"`
	HealthRecords int    `json:"health_records"`
}
