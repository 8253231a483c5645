package entity

// Patient is a registration created from the admin dashboard
type Patient struct {
	ID               string `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	DateOfBirth      string `json:"dateOfBirth"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
	CreatedAt        string `json:"createdAt,omitempty"`
}
