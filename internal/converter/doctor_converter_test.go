package converter

import (
	"testing"

	"hospital-portal/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestDocumentToDoctor_NumericExperience(t *testing.T) {
	doc := entity.Document{ID: "d1", Fields: entity.JSON{
		"name":       "Dr. Ricardo Mendes",
		"experience": float64(12),
	}}

	assert.Equal(t, "12", DocumentToDoctor(doc).Experience)
}

func TestDoctorToDirectoryEntry(t *testing.T) {
	d := DoctorToDirectoryEntry(entity.Doctor{
		ID:             "d1",
		Name:           "Dr. Ricardo Mendes",
		Specialty:      "Dermatology",
		Qualifications: "MBBS, MD",
		Department:     "Dermatology",
	})

	assert.Equal(t, "https://ui-avatars.com/api/?name=Dr.+Ricardo+Mendes&background=0d8488&color=fff&size=300", d.Image)
	assert.Equal(t, 4.5, d.Rating)
	assert.Equal(t, "Dermatology", d.Location)
	assert.Equal(t, []string{"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM"}, d.Availability)
	assert.Equal(t, "MBBS, MD. Specializing in Dermatology.", d.Bio)

	d.Availability[0] = "changed"
	assert.Equal(t, "9:00 AM", DoctorToDirectoryEntry(entity.Doctor{}).Availability[0])
}

func TestAppointmentToFields_OmitsEmptyScreenshot(t *testing.T) {
	fields := AppointmentToFields(&entity.Appointment{Name: "Jane", Status: entity.AppointmentStatusPending})
	assert.NotContains(t, fields, "paymentScreenshot")
	assert.Equal(t, "pending", fields["status"])

	fields = AppointmentToFields(&entity.Appointment{PaymentScreenshot: "https://example.com/p.png"})
	assert.Equal(t, "https://example.com/p.png", fields["paymentScreenshot"])
}
