package entity

const (
	HealthRecordTypeDocument = "Document"
	HealthRecordTypeImage    = "Image"
)

// MaxUploadSize caps payment screenshots and health record files.
const MaxUploadSize = 5 * 1024 * 1024

// HealthRecord is a file a patient stored through the portal.
type HealthRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	ContentType string `json:"contentType"`
	Date        string `json:"date"`
	URL         string `json:"url"`
	OwnerID     string `json:"ownerId"`
	CreatedAt   string `json:"createdAt,omitempty"`
}
