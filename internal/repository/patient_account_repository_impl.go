package repository

import (
	"errors"

	"hospital-portal/internal/domain/entity"
	domainRepo "hospital-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientAccountRepository struct{}

func NewPatientAccountRepository() domainRepo.PatientAccountRepository {
	return &patientAccountRepository{}
}

func (r *patientAccountRepository) Create(db *gorm.DB, account *entity.PatientAccount) error {
	return db.Create(account).Error
}

func (r *patientAccountRepository) FindByEmail(db *gorm.DB, email string) (*entity.PatientAccount, error) {
	var account entity.PatientAccount
	err := db.Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *patientAccountRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PatientAccount, error) {
	var account entity.PatientAccount
	err := db.Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}
