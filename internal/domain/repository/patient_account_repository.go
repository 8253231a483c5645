package repository

import (
	"hospital-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientAccountRepository interface {
	Create(db *gorm.DB, account *entity.PatientAccount) error
	FindByEmail(db *gorm.DB, email string) (*entity.PatientAccount, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.PatientAccount, error)
}
