package converter

import (
	"hospital-portal/internal/domain/entity"
)

// DocumentToAuditLog converts an audit_logs document
func DocumentToAuditLog(doc entity.Document) entity.AuditLog {
	f := doc.Fields
	return entity.AuditLog{
		ID:        doc.ID,
		Action:    f.String("action"),
		Entity:    f.String("entity"),
		EntityID:  f.String("entityId"),
		Actor:     f.String("actor"),
		OldValue:  f["oldValue"],
		NewValue:  f["newValue"],
		CreatedAt: f.String(entity.FieldCreatedAt),
	}
}

// DocumentsToAuditLogs converts a slice of audit_logs documents
func DocumentsToAuditLogs(docs []entity.Document) []entity.AuditLog {
	logs := make([]entity.AuditLog, len(docs))
	for i, doc := range docs {
		logs[i] = DocumentToAuditLog(doc)
	}
	return logs
}

func AuditLogToFields(l *entity.AuditLog) entity.JSON {
	return entity.JSON{
		"action":   l.Action,
		"entity":   l.Entity,
		"entityId": l.EntityID,
		"actor":    l.Actor,
		"oldValue": l.OldValue,
		"newValue": l.NewValue,
	}
}
