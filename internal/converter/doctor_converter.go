package converter

import (
	"fmt"
	"net/url"

	"hospital-portal/internal/domain/entity"
)

// Directory defaults for admin-managed doctors, which carry no rating or hours.
const (
	defaultDoctorRating = 4.5
)

var defaultAvailability = []string{"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM"}

func DocumentToDoctor(doc entity.Document) entity.Doctor {
	f := doc.Fields
	return entity.Doctor{
		ID:             doc.ID,
		Name:           f.String("name"),
		Specialty:      f.String("specialty"),
		Email:          f.String("email"),
		Phone:          f.String("phone"),
		Qualifications: f.String("qualifications"),
		Experience:     stringValue(f["experience"]),
		Department:     f.String("department"),
		CreatedAt:      f.String(entity.FieldCreatedAt),
	}
}

func DocumentsToDoctors(docs []entity.Document) []entity.Doctor {
	doctors := make([]entity.Doctor, len(docs))
	for i, doc := range docs {
		doctors[i] = DocumentToDoctor(doc)
	}
	return doctors
}

// DoctorToDirectoryEntry fills the visitor-facing card fields of an admin-managed doctor.
func DoctorToDirectoryEntry(d entity.Doctor) entity.Doctor {
	d.Image = fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=0d8488&color=fff&size=300", url.QueryEscape(d.Name))
	d.Rating = defaultDoctorRating
	d.Location = d.Department
	d.Availability = append([]string(nil), defaultAvailability...)
	d.Bio = fmt.Sprintf("%s. Specializing in %s.", d.Qualifications, d.Specialty)
	return d
}

func DoctorToFields(d *entity.Doctor) entity.JSON {
	return entity.JSON{
		"name":           d.Name,
		"specialty":      d.Specialty,
		"email":          d.Email,
		"phone":          d.Phone,
		"qualifications": d.Qualifications,
		"experience":     d.Experience,
		"department":     d.Department,
	}
}

func stringValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
