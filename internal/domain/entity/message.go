package entity

// MessageStatus is the read state of a contact message.
type MessageStatus string

const (
	MessageStatusUnread MessageStatus = "unread"
	MessageStatusRead   MessageStatus = "read"
)

func (s MessageStatus) IsValid() bool {
	return s == MessageStatusUnread || s == MessageStatusRead
}

// Message is a contact form submission
type Message struct {
	ID        string        `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    MessageStatus `json:"status"`
	CreatedAt string        `json:"createdAt,omitempty"`
	UpdatedAt string        `json:"updatedAt,omitempty"`
}

func (m *Message) IsUnread() bool {
	return m.Status == MessageStatusUnread
}

// FullName joins first and last name.
func (m *Message) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
