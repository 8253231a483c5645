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

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.CreatedResponse, error)
}

type doctorUsecase struct {
	log                 *logrus.Logger
	store               repository.DocumentStore
	auditService        service.AuditService
	confirmationDisplay time.Duration
}

func NewDoctorUsecase(
	log *logrus.Logger,
	store repository.DocumentStore,
	auditService service.AuditService,
	confirmationDisplay time.Duration,
) DoctorUsecase {
	return &doctorUsecase{
		log:                 log,
		store:               store,
		auditService:        auditService,
		confirmationDisplay: confirmationDisplay,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.CreatedResponse, error) {
	doctor := entity.Doctor{
		Name:           req.Name,
		Specialty:      req.Specialty,
		Email:          req.Email,
		Phone:          req.Phone,
		Qualifications: req.Qualifications,
		Experience:     req.Experience,
		Department:     req.Department,
	}

	fields := converter.DoctorToFields(&doctor)
	id, err := u.store.Create(ctx, entity.CollectionDoctors, fields)
	if err != nil {
		u.log.Errorf("Failed to store doctor %s: %+v", doctor.Name, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	if u.auditService != nil {
		_ = u.auditService.LogCreate(ctx, entity.AdminSubject, entity.AuditActionDoctorCreate, entity.CollectionDoctors, id, fields)
	}

	u.log.Infof("Doctor created: id=%s, specialty=%s", id, doctor.Specialty)
	return &dto.CreatedResponse{
		ID:                         id,
		ConfirmationDisplaySeconds: displaySeconds(u.confirmationDisplay),
	}, nil
}
