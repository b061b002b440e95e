package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CakeOrderStatus defines the possible statuses of a cake order
type CakeOrderStatus string

const (
	CakeOrderStatusPending    CakeOrderStatus = "pending"
	CakeOrderStatusConfirmed  CakeOrderStatus = "confirmed"
	CakeOrderStatusInProgress CakeOrderStatus = "in_progress"
	CakeOrderStatusCompleted  CakeOrderStatus = "completed"
	CakeOrderStatusCancelled  CakeOrderStatus = "cancelled"
)

// CakeOrderStatuses is the closed vocabulary accepted by status updates
var CakeOrderStatuses = []CakeOrderStatus{
	CakeOrderStatusPending,
	CakeOrderStatusConfirmed,
	CakeOrderStatusInProgress,
	CakeOrderStatusCompleted,
	CakeOrderStatusCancelled,
}

// IsValidCakeOrderStatus reports whether s belongs to the cake order vocabulary
func IsValidCakeOrderStatus(s string) bool {
	for _, v := range CakeOrderStatuses {
		if string(v) == s {
			return true
		}
	}
	return false
}

// CakeOrder represents a custom or wedding cake order. Wedding orders
// share the table and are distinguished by CakeType.
type CakeOrder struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User               User            `gorm:"foreignKey:UserID" json:"-"`
	CakeType           string          `gorm:"not null;default:'custom'" json:"cake_type"` // "custom" or "wedding"
	Name               string          `gorm:"not null" json:"name"`
	Phone              string          `gorm:"not null" json:"phone"`
	Email              string          `json:"email"`
	EventDate          time.Time       `gorm:"not null" json:"event_date"`
	Size               string          `gorm:"not null" json:"size"`
	Flavor             string          `gorm:"not null" json:"flavor"`
	Supplements        string          `json:"supplements"` // comma-separated selection keys
	Topping            string          `json:"topping"`
	Packaging          string          `json:"packaging"`
	DeliveryLocation   string          `json:"delivery_location"`
	Instructions       string          `gorm:"type:text" json:"instructions"`
	TotalPrice         int64           `json:"total_price"`
	Status             CakeOrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CancellationReason *string         `json:"cancellation_reason"` // set only when an admin cancels with a reason
	AdminNotes         *string         `json:"admin_notes"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the CakeOrder model
func (CakeOrder) TableName() string {
	return "cake_orders"
}

// BeforeCreate assigns a UUID to new cake orders
func (o *CakeOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
