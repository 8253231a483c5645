package usecase

import (
	"context"
	"fmt"
	"time"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type MessageUsecase interface {
	CreateMessage(ctx context.Context, req *dto.CreateMessageRequest) (*dto.CreatedResponse, error)
}

type messageUsecase struct {
	log                 *logrus.Logger
	store               repository.DocumentStore
	defaultCountryCode  string
	confirmationDisplay time.Duration
}

func NewMessageUsecase(
	log *logrus.Logger,
	store repository.DocumentStore,
	defaultCountryCode string,
	confirmationDisplay time.Duration,
) MessageUsecase {
	return &messageUsecase{
		log:                 log,
		store:               store,
		defaultCountryCode:  defaultCountryCode,
		confirmationDisplay: confirmationDisplay,
	}
}

// CreateMessage stores an unread contact message. The phone is stored with
// its country code prefixed.
func (u *messageUsecase) CreateMessage(ctx context.Context, req *dto.CreateMessageRequest) (*dto.CreatedResponse, error) {
	countryCode := req.CountryCode
	if countryCode == "" {
		countryCode = u.defaultCountryCode
	}

	message := entity.Message{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     countryCode + req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    entity.MessageStatusUnread,
	}

	id, err := u.store.Create(ctx, entity.CollectionMessages, converter.MessageToFields(&message))
	if err != nil {
		u.log.Errorf("Failed to store message from %s: %+v", message.Email, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	u.log.Infof("Message created: id=%s, subject=%q", id, message.Subject)
	return &dto.CreatedResponse{
		ID:                         id,
		ConfirmationDisplaySeconds: displaySeconds(u.confirmationDisplay),
	}, nil
}
