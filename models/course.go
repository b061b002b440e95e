package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OnlineCourse represents a purchasable online baking course
type OnlineCourse struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string        `gorm:"not null" json:"title"`
	Description    string        `gorm:"type:text" json:"description"`
	Price          int64         `gorm:"not null" json:"price"`
	ContentURL     string        `json:"-"` // delivered through a CourseAccess grant, never listed publicly
	ThumbnailS3Key *string       `json:"thumbnail_s3_key"`
	ThumbnailURL   *string       `gorm:"-" json:"thumbnail_url,omitempty"` // computed field, presigned URL
	Status         ContentStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// TableName specifies the table name for the OnlineCourse model
func (OnlineCourse) TableName() string {
	return "online_courses"
}

// BeforeCreate assigns a UUID to new courses
func (c *OnlineCourse) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CourseOrderStatus defines the possible statuses of a course order
type CourseOrderStatus string

const (
	CourseOrderStatusPending   CourseOrderStatus = "pending"
	CourseOrderStatusPaid      CourseOrderStatus = "paid"
	CourseOrderStatusVerified  CourseOrderStatus = "verified"
	CourseOrderStatusCancelled CourseOrderStatus = "cancelled"
)

// IsValidCourseOrderStatus reports whether s belongs to the course order vocabulary
func IsValidCourseOrderStatus(s string) bool {
	switch CourseOrderStatus(s) {
	case CourseOrderStatusPending, CourseOrderStatusPaid,
		CourseOrderStatusVerified, CourseOrderStatusCancelled:
		return true
	}
	return false
}

// CourseOrder represents a customer's purchase of an online course.
// Payment is receipt-based: the customer uploads a transfer receipt
// which an admin verifies by hand.
type CourseOrder struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User       User              `gorm:"foreignKey:UserID" json:"-"`
	CourseID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"course_id"`
	Course     OnlineCourse      `gorm:"foreignKey:CourseID" json:"course"`
	Name       string            `gorm:"not null" json:"name"`
	Phone      string            `json:"phone"`
	Email      string            `json:"email"`
	Amount     int64             `gorm:"not null" json:"amount"`
	Status     CourseOrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AdminNotes *string           `json:"admin_notes"`
	Receipts   []PaymentReceipt  `gorm:"foreignKey:CourseOrderID" json:"receipts,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// TableName specifies the table name for the CourseOrder model
func (CourseOrder) TableName() string {
	return "course_orders"
}

// BeforeCreate assigns a UUID to new course orders
func (o *CourseOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// PaymentReceipt holds an uploaded transfer receipt for a course order
type PaymentReceipt struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_order_id"`
	ImageS3Key    string    `gorm:"not null" json:"image_s3_key"`
	ImageURL      string    `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL
	Amount        int64     `gorm:"not null" json:"amount"`       // amount the customer claims to have transferred
	Notes         string    `gorm:"type:text" json:"notes"`
	Verified      bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the PaymentReceipt model
func (PaymentReceipt) TableName() string {
	return "payment_receipts"
}

// BeforeCreate assigns a UUID to new receipts
func (r *PaymentReceipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// CourseAccess grants a user access to a course's content link.
// Created exactly once per verified receipt; the (user, course) pair is unique.
type CourseAccess struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_course_access_pair,unique" json:"user_id"`
	CourseID  uuid.UUID    `gorm:"type:uuid;not null;index:idx_course_access_pair,unique" json:"course_id"`
	Course    OnlineCourse `gorm:"foreignKey:CourseID" json:"course"`
	ReceiptID uuid.UUID    `gorm:"type:uuid" json:"receipt_id"`
	CreatedAt time.Time    `json:"created_at"`
}

// TableName specifies the table name for the CourseAccess model
func (CourseAccess) TableName() string {
	return "course_accesses"
}

// BeforeCreate assigns a UUID to new access grants
func (a *CourseAccess) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
