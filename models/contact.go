package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessageStatus defines the possible statuses of a contact message
type ContactMessageStatus string

const (
	ContactMessageStatusUnread  ContactMessageStatus = "unread"
	ContactMessageStatusRead    ContactMessageStatus = "read"
	ContactMessageStatusReplied ContactMessageStatus = "replied"
)

// IsValidContactMessageStatus reports whether s belongs to the message vocabulary
func IsValidContactMessageStatus(s string) bool {
	switch ContactMessageStatus(s) {
	case ContactMessageStatusUnread, ContactMessageStatusRead, ContactMessageStatusReplied:
		return true
	}
	return false
}

// ContactMessage represents a submission from the public contact form.
// The form collects contact details inline, so messages carry no user
// reference and may be hard-deleted by admins.
type ContactMessage struct {
	ID        uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string               `gorm:"not null" json:"name"`
	Email     string               `gorm:"not null" json:"email"`
	Phone     string               `json:"phone"`
	Subject   string               `json:"subject"`
	Message   string               `gorm:"type:text;not null" json:"message"`
	Status    ContactMessageStatus `gorm:"type:varchar(20);not null;default:'unread'" json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// TableName specifies the table name for the ContactMessage model
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// BeforeCreate assigns a UUID to new contact messages
func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
