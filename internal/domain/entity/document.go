package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Collection names in the document store.
const (
	CollectionAppointments  = "appointments"
	CollectionMessages      = "messages"
	CollectionDoctors       = "doctors"
	CollectionPatients      = "patients"
	CollectionHealthRecords = "health_records"
	CollectionAuditLogs     = "audit_logs"
)

// Server timestamp field names written by the store.
const (
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// TimestampLayout is RFC 3339 with a fixed nine-digit fraction. Stamps in UTC
// sort lexically in time order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"


// StoredDocument is the persisted row behind every schemaless record.
type StoredDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Collection string    `gorm:"type:varchar(100);not null;index"`
	Fields     JSON      `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (StoredDocument) TableName() string {
	return "documents"
}

// Document is one (id, fields) pair of a snapshot.
type Document struct {
	ID     string
	Fields JSON
}

// Snapshot is the complete ordered result set of a live query.
type Snapshot struct {
	Collection string
	Documents  []Document
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// String returns the field as a string, or "" when absent or not a string.
func (j JSON) String(key string) string {
	if v, ok := j[key].(string); ok {
		return v
	}
	return ""
}
