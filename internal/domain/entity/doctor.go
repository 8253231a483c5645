package entity

import "strings"

// AllSpecialties is the filter sentinel that disables specialty filtering.
const AllSpecialties = "All Specialties"

// StaticDoctorIDPrefix marks entries of the built-in fallback list.
const StaticDoctorIDPrefix = "static-"

// Doctor is a directory entry, either admin-managed or from the static list.
type Doctor struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Qualifications string   `json:"qualifications,omitempty"`
	Experience     string   `json:"experience"`
	Department     string   `json:"department,omitempty"`
	Image          string   `json:"image,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	Location       string   `json:"location,omitempty"`
	Availability   []string `json:"availability,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	CreatedAt      string   `json:"createdAt,omitempty"`
}

// IsStatic reports whether the doctor comes from the built-in fallback list.
func (d *Doctor) IsStatic() bool {
	return IsStaticDoctorID(d.ID)
}

func IsStaticDoctorID(id string) bool {
	return strings.HasPrefix(id, StaticDoctorIDPrefix)
}

// Specialties offered by the directory filter.
var Specialties = []string{
	AllSpecialties,
	"Cardiology",
	"Neurology",
	"Pediatrics",
	"Orthopedics",
	"Dermatology",
	"Oncology",
}

// Departments accepted by booking and doctor forms.
var Departments = []string{
	"Cardiology",
	"Neurology",
	"Pediatrics",
	"Orthopedics",
	"Dermatology",
	"Oncology",
	"Emergency Medicine",
}

// StaticDoctors returns a fresh copy of the built-in directory entries.
func StaticDoctors() []Doctor {
	return []Doctor{
		{
			ID:           "static-1",
			Name:         "Dr. Sarah Johnson",
			Specialty:    "Cardiology",
			Image:        avatarURL("Sarah Johnson"),
			Rating:       4.9,
			Experience:   "15+ years",
			Location:     "Main Campus",
			Availability: []string{"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM"},
			Bio:          "Dr. Johnson is a board-certified cardiologist with expertise in interventional cardiology and heart disease prevention.",
		},
		{
			ID:           "static-2",
			Name:         "Dr. Michael Chen",
			Specialty:    "Neurology",
			Image:        avatarURL("Michael Chen"),
			Rating:       4.8,
			Experience:   "12+ years",
			Location:     "North Wing",
			Availability: []string{"10:00 AM", "1:00 PM", "3:30 PM"},
			Bio:          "Specializing in neurological disorders and brain health, Dr. Chen brings cutting-edge treatment approaches.",
		},
		{
			ID:           "static-3",
			Name:         "Dr. Emily Rodriguez",
			Specialty:    "Pediatrics",
			Image:        avatarURL("Emily Rodriguez"),
			Rating:       5.0,
			Experience:   "10+ years",
			Location:     "Children's Wing",
			Availability: []string{"8:00 AM", "10:30 AM", "2:30 PM", "4:30 PM"},
			Bio:          "Dr. Rodriguez is dedicated to providing comprehensive pediatric care with a gentle, family-centered approach.",
		},
		{
			ID:           "static-4",
			Name:         "Dr. James Wilson",
			Specialty:    "Orthopedics",
			Image:        avatarURL("James Wilson"),
			Rating:       4.7,
			Experience:   "18+ years",
			Location:     "Sports Medicine",
			Availability: []string{"9:30 AM", "1:30 PM", "3:00 PM"},
			Bio:          "Expert in sports medicine and joint replacement surgery, helping patients regain mobility and strength.",
		},
	}
}

func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + strings.ReplaceAll(name, " ", "+") + "&background=0d8488&color=fff&size=300"
}
