package service

import (
	"context"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type AuditService interface {
	LogCreate(ctx context.Context, actor, action, entityName, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, actor, action, entityName, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, actor, action, entityName, entityID string, oldValue interface{}) error
}

type auditService struct {
	store repository.DocumentStore
	log   *logrus.Logger
}

func NewAuditService(store repository.DocumentStore, log *logrus.Logger) AuditService {
	return &auditService{
		store: store,
		log:   log,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, actor, action, entityName, entityID string, newValue interface{}) error {
	return s.write(ctx, &entity.AuditLog{
		Action:   action,
		Entity:   entityName,
		EntityID: entityID,
		Actor:    actor,
		NewValue: newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, actor, action, entityName, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, &entity.AuditLog{
		Action:   action,
		Entity:   entityName,
		EntityID: entityID,
		Actor:    actor,
		OldValue: oldValue,
		NewValue: newValue,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, actor, action, entityName, entityID string, oldValue interface{}) error {
	return s.write(ctx, &entity.AuditLog{
		Action:   action,
		Entity:   entityName,
		EntityID: entityID,
		Actor:    actor,
		OldValue: oldValue,
	})
}

func (s *auditService) write(ctx context.Context, auditLog *entity.AuditLog) error {
	if _, err := s.store.Create(ctx, entity.CollectionAuditLogs, converter.AuditLogToFields(auditLog)); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}
	return nil
}
