package usecase

import (
	"context"
	"fmt"
	"time"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/service"

	"github.com/sirupsen/logrus"
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.CreatedResponse, error)
}

type patientUsecase struct {
	log                 *logrus.Logger
	store               repository.DocumentStore
	auditService        service.AuditService
	confirmationDisplay time.Duration
}

func NewPatientUsecase(
	log *logrus.Logger,
	store repository.DocumentStore,
	auditService service.AuditService,
	confirmationDisplay time.Duration,
) PatientUsecase {
	return &patientUsecase{
		log:                 log,
		store:               store,
		auditService:        auditService,
		confirmationDisplay: confirmationDisplay,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.CreatedResponse, error) {
	patient := entity.Patient{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		DateOfBirth:      req.DateOfBirth,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
	}

	fields := converter.PatientToFields(&patient)
	id, err := u.store.Create(ctx, entity.CollectionPatients, fields)
	if err != nil {
		u.log.Errorf("Failed to store patient %s: %+v", patient.Email, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	if u.auditService != nil {
		_ = u.auditService.LogCreate(ctx, entity.AdminSubject, entity.AuditActionPatientCreate, entity.CollectionPatients, id, fields)
	}

	u.log.Infof("Patient created: id=%s", id)
	return &dto.CreatedResponse{
		ID:                         id,
		ConfirmationDisplaySeconds: displaySeconds(u.confirmationDisplay),
	}, nil
}
