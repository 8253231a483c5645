package converter

import (
	"hospital-portal/internal/domain/entity"
)

// DocumentToAppointment maps a stored document onto an Appointment
func DocumentToAppointment(doc entity.Document) entity.Appointment {
	f := doc.Fields
	return entity.Appointment{
		ID:                doc.ID,
		Name:              f.String("name"),
		Email:             f.String("email"),
		Phone:             f.String("phone"),
		Department:        f.String("department"),
		Date:              f.String("date"),
		Time:              f.String("time"),
		Reason:            f.String("reason"),
		Payment:           f.String("payment"),
		PaymentScreenshot: f.String("paymentScreenshot"),
		Status:            entity.AppointmentStatus(f.String("status")),
		CreatedAt:         f.String(entity.FieldCreatedAt),
		UpdatedAt:         f.String(entity.FieldUpdatedAt),
	}
}

// DocumentsToAppointments keeps snapshot order
func DocumentsToAppointments(docs []entity.Document) []entity.Appointment {
	appointments := make([]entity.Appointment, len(docs))
	for i, doc := range docs {
		appointments[i] = DocumentToAppointment(doc)
	}
	return appointments
}

// AppointmentToFields assembles the document written for a new appointment.
func AppointmentToFields(a *entity.Appointment) entity.JSON {
	fields := entity.JSON{
		"name":       a.Name,
		"email":      a.Email,
		"phone":      a.Phone,
		"department": a.Department,
		"date":       a.Date,
		"time":       a.Time,
		"reason":     a.Reason,
		"payment":    a.Payment,
		"status":     string(a.Status),
	}
	if a.PaymentScreenshot != "" {
		fields["paymentScreenshot"] = a.PaymentScreenshot
	}
	return fields
}
