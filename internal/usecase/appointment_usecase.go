package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrPaymentProofRequired = errors.New("payment screenshot is required for Pay Now")
)

// BookingNotifier is told about every stored appointment.
type BookingNotifier interface {
	SendBookingAcknowledgement(appointment entity.Appointment)
}

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	log                 *logrus.Logger
	store               repository.DocumentStore
	blobs               repository.BlobStore
	notifier            BookingNotifier
	confirmationDisplay time.Duration
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	store repository.DocumentStore,
	blobs repository.BlobStore,
	notifier BookingNotifier,
	confirmationDisplay time.Duration,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:                 log,
		store:               store,
		blobs:               blobs,
		notifier:            notifier,
		confirmationDisplay: confirmationDisplay,
	}
}

// CreateAppointment stores a pending appointment.
//
// With "Pay Now" the screenshot is uploaded first and its URL embedded in the
// record; an upload failure means nothing is written.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	payment := req.Payment
	if payment == "" {
		payment = entity.PaymentAtHospital
	}

	appointment := entity.Appointment{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Date:       req.Date,
		Time:       req.Time,
		Reason:     req.Reason,
		Payment:    payment,
		Status:     entity.AppointmentStatusPending,
	}

	if entity.PaymentRequiresProof(payment) {
		if req.PaymentScreenshot == nil {
			return nil, ErrPaymentProofRequired
		}

		url, err := u.uploadScreenshot(ctx, req.PaymentScreenshot)
		if err != nil {
			return nil, err
		}
		appointment.PaymentScreenshot = url
	}

	id, err := u.store.Create(ctx, entity.CollectionAppointments, converter.AppointmentToFields(&appointment))
	if err != nil {
		u.log.Errorf("Failed to store appointment for %s: %+v", appointment.Email, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	appointment.ID = id

	if u.notifier != nil {
		u.notifier.SendBookingAcknowledgement(appointment)
	}

	u.log.Infof("Appointment created: id=%s, department=%s, date=%s, payment=%s", id, appointment.Department, appointment.Date, payment)
	return &dto.AppointmentResponse{
		ID:                         id,
		Status:                     appointment.Status,
		Payment:                    appointment.Payment,
		PaymentScreenshot:          appointment.PaymentScreenshot,
		ConfirmationDisplaySeconds: displaySeconds(u.confirmationDisplay),
	}, nil
}

func (u *appointmentUsecase) uploadScreenshot(ctx context.Context, file *dto.UploadedFile) (string, error) {
	_, content, err := inspectUpload(file)
	if err != nil {
		return "", err
	}

	url, err := u.blobs.Upload(ctx, "payment_"+file.Name, content)
	if err != nil {
		u.log.Warnf("Failed to upload payment screenshot %s: %+v", file.Name, err)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return url, nil
}
