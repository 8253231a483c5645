package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	FirstName string `json:"firstName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,phone"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed"`
}

func TestCountDigits(t *testing.T) {
	assert.Equal(t, 10, CountDigits("(555) 123-4567"))
	assert.Equal(t, 0, CountDigits("abc"))
	assert.Equal(t, 12, CountDigits("+91 98765 43210"))
}

func TestValidate_Phone(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		phone string
		valid bool
	}{
		{"555-123-4567", true},
		{"(555) 123 456", false},
		{"98765 43210", true},
		{"123456789", false},
	}

	for _, tt := range tests {
		err := v.Validate(contactForm{FirstName: "Jane", Email: "jane@example.com", Phone: tt.phone})
		if tt.valid {
			assert.NoError(t, err, tt.phone)
		} else {
			assert.Error(t, err, tt.phone)
		}
	}
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(contactForm{Email: "not-an-email", Phone: "123", Status: "cancelled"})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "firstName is required", errs["firstName"])
	assert.Equal(t, "email must be a valid email address", errs["email"])
	assert.Equal(t, "phone must contain at least 10 digits", errs["phone"])
	assert.Equal(t, "status must be one of: pending confirmed", errs["status"])
}
