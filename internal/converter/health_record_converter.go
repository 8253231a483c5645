package converter

import (
	"hospital-portal/internal/domain/entity"
)

func DocumentToHealthRecord(doc entity.Document) entity.HealthRecord {
	f := doc.Fields
	return entity.HealthRecord{
		ID:          doc.ID,
		Name:        f.String("name"),
		Type:        f.String("type"),
		ContentType: f.String("contentType"),
		Date:        f.String("date"),
		URL:         f.String("url"),
		OwnerID:     f.String("ownerId"),
		CreatedAt:   f.String(entity.FieldCreatedAt),
	}
}

func DocumentsToHealthRecords(docs []entity.Document) []entity.HealthRecord {
	records := make([]entity.HealthRecord, len(docs))
	for i, doc := range docs {
		records[i] = DocumentToHealthRecord(doc)
	}
	return records
}

func HealthRecordToFields(r *entity.HealthRecord) entity.JSON {
	return entity.JSON{
		"name":        r.Name,
		"type":        r.Type,
		"contentType": r.ContentType,
		"date":        r.Date,
		"url":         r.URL,
		"ownerId":     r.OwnerID,
	}
}
