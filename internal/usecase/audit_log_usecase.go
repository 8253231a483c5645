package usecase

import (
	"context"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type AuditLogUsecase interface {
	GetAllAuditLogs(ctx context.Context) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	log   *logrus.Logger
	store repository.DocumentStore
}

func NewAuditLogUsecase(
	log *logrus.Logger,
	store repository.DocumentStore,
) AuditLogUsecase {
	return &auditLogUsecase{
		log:   log,
		store: store,
	}
}

// GetAllAuditLogs returns the command trail, newest first
func (u *auditLogUsecase) GetAllAuditLogs(ctx context.Context) (*dto.AuditLogListResponse, error) {
	query := repository.Query{
		Collection: entity.CollectionAuditLogs,
		OrderBy:    entity.FieldCreatedAt,
		Descending: true,
	}
	docs, err := u.store.List(ctx, query, nil)
	if err != nil {
		u.log.Warnf("Failed to find all audit logs: %+v", err)
		return nil, err
	}

	logs := converter.DocumentsToAuditLogs(docs)

	return &dto.AuditLogListResponse{
		Logs:  logs,
		Total: len(logs),
	}, nil
}
