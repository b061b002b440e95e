package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// System toggle keys. Each gates one customer-facing order form.
const (
	SettingCustomOrdersOpen         = "custom_orders_open"
	SettingWeddingOrdersOpen        = "wedding_orders_open"
	SettingWorkshopReservationsOpen = "workshop_reservations_open"
)

// SystemSettingKeys lists every known toggle
var SystemSettingKeys = []string{
	SettingCustomOrdersOpen,
	SettingWeddingOrdersOpen,
	SettingWorkshopReservationsOpen,
}

// IsValidSystemSettingKey reports whether key names a known toggle
func IsValidSystemSettingKey(key string) bool {
	for _, k := range SystemSettingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// SystemSetting is a global boolean flag flipped from the admin page
type SystemSetting struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	Value     bool      `gorm:"not null;default:true" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the SystemSetting model
func (SystemSetting) TableName() string {
	return "system_settings"
}

// BeforeCreate assigns a UUID to new settings
func (s *SystemSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// UnavailableDate blocks a single calendar day from cake orders.
// One row per day keeps the denylist queries trivial.
type UnavailableDate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date      time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the UnavailableDate model
func (UnavailableDate) TableName() string {
	return "unavailable_dates"
}

// BeforeCreate assigns a UUID to new unavailable dates
func (d *UnavailableDate) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
