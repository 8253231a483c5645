package converter

import (
	"hospital-portal/internal/domain/entity"
)

func DocumentToPatient(doc entity.Document) entity.Patient {
	f := doc.Fields
	return entity.Patient{
		ID:               doc.ID,
		FirstName:        f.String("firstName"),
		LastName:         f.String("lastName"),
		Email:            f.String("email"),
		Phone:            f.String("phone"),
		DateOfBirth:      f.String("dateOfBirth"),
		Address:          f.String("address"),
		EmergencyContact: f.String("emergencyContact"),
		CreatedAt:        f.String(entity.FieldCreatedAt),
	}
}

func DocumentsToPatients(docs []entity.Document) []entity.Patient {
	patients := make([]entity.Patient, len(docs))
	for i, doc := range docs {
		patients[i] = DocumentToPatient(doc)
	}
	return patients
}

func PatientToFields(p *entity.Patient) entity.JSON {
	return entity.JSON{
		"firstName":        p.FirstName,
		"lastName":         p.LastName,
		"email":            p.Email,
		"phone":            p.Phone,
		"dateOfBirth":      p.DateOfBirth,
		"address":          p.Address,
		"emergencyContact": p.EmergencyContact,
	}
}
