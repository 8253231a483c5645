package converter

import (
	"hospital-portal/internal/domain/entity"
)

func DocumentToMessage(doc entity.Document) entity.Message {
	f := doc.Fields
	return entity.Message{
		ID:        doc.ID,
		FirstName: f.String("firstName"),
		LastName:  f.String("lastName"),
		Email:     f.String("email"),
		Phone:     f.String("phone"),
		Subject:   f.String("subject"),
		Message:   f.String("message"),
		Status:    entity.MessageStatus(f.String("status")),
		CreatedAt: f.String(entity.FieldCreatedAt),
		UpdatedAt: f.String(entity.FieldUpdatedAt),
	}
}

func DocumentsToMessages(docs []entity.Document) []entity.Message {
	messages := make([]entity.Message, len(docs))
	for i, doc := range docs {
		messages[i] = DocumentToMessage(doc)
	}
	return messages
}

func MessageToFields(m *entity.Message) entity.JSON {
	return entity.JSON{
		"firstName": m.FirstName,
		"lastName":  m.LastName,
		"email":     m.Email,
		"phone":     m.Phone,
		"subject":   m.Subject,
		"message":   m.Message,
		"status":    string(m.Status),
	}
}
