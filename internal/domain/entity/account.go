package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session roles
const (
	RoleAdmin   = "admin"
	RolePatient = "patient"
)

// AdminSubject is the session subject of the configured operator account.
const AdminSubject = "admin"

// PatientAccount is a patient portal login
type PatientAccount struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PatientAccount) TableName() string {
	return "patient_accounts"
}
