package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentStatus is the visibility flag shared by content records
// (workshop schedules, online courses, gallery items).
type ContentStatus string

const (
	ContentStatusActive   ContentStatus = "active"
	ContentStatusInactive ContentStatus = "inactive"
	ContentStatusDraft    ContentStatus = "draft"
)

// IsValidContentStatus reports whether s belongs to the content vocabulary
func IsValidContentStatus(s string) bool {
	switch ContentStatus(s) {
	case ContentStatusActive, ContentStatusInactive, ContentStatusDraft:
		return true
	}
	return false
}

// WorkshopSchedule represents a scheduled baking workshop
type WorkshopSchedule struct {
	ID                  uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Title               string        `gorm:"not null" json:"title"`
	Description         string        `gorm:"type:text" json:"description"`
	EventDate           time.Time     `gorm:"not null" json:"event_date"`
	Location            string        `json:"location"`
	Price               int64         `json:"price"`
	MaxParticipants     int           `gorm:"not null" json:"max_participants"`
	CurrentParticipants int           `gorm:"not null;default:0" json:"current_participants"`
	Status              ContentStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// TableName specifies the table name for the WorkshopSchedule model
func (WorkshopSchedule) TableName() string {
	return "workshop_schedules"
}

// BeforeCreate assigns a UUID to new workshop schedules
func (w *WorkshopSchedule) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// RemainingSpots returns the advertised remaining capacity. The counter
// is maintained manually by admins, so this can drift from the number
// of confirmed reservations.
func (w *WorkshopSchedule) RemainingSpots() int {
	return w.MaxParticipants - w.CurrentParticipants
}

// ReservationStatus defines the possible statuses of a workshop reservation
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// IsValidReservationStatus reports whether s belongs to the reservation vocabulary
func IsValidReservationStatus(s string) bool {
	switch ReservationStatus(s) {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled:
		return true
	}
	return false
}

// WorkshopReservation represents a customer reservation for a workshop
type WorkshopReservation struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User               User              `gorm:"foreignKey:UserID" json:"-"`
	WorkshopScheduleID uuid.UUID         `gorm:"type:uuid;not null;index" json:"workshop_schedule_id"`
	WorkshopSchedule   WorkshopSchedule  `gorm:"foreignKey:WorkshopScheduleID" json:"workshop_schedule"`
	Name               string            `gorm:"not null" json:"name"`
	Phone              string            `gorm:"not null" json:"phone"`
	Email              string            `json:"email"`
	Participants       int               `gorm:"not null" json:"participants"`
	Notes              string            `gorm:"type:text" json:"notes"`
	Status             ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CancellationReason *string           `json:"cancellation_reason"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// TableName specifies the table name for the WorkshopReservation model
func (WorkshopReservation) TableName() string {
	return "workshop_reservations"
}

// BeforeCreate assigns a UUID to new reservations
func (r *WorkshopReservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
