package subscription

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status represents the lifecycle state of a subscription
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusExpired  Status = "EXPIRED"
)

// Subscription is a user's interest window for a GICS sector, optionally
// narrowed to a sub-category. The partial unique index enforces at most one
// ACTIVE subscription per (user, sector, sub-category) tuple at the schema
// level; an empty sub-category is a value of its own, not a wildcard.
type Subscription struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	UserID          uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_active_subscription,where:status = 'ACTIVE'"`
	GicsSector      string     `json:"gics_sector" gorm:"type:varchar(100);not null;uniqueIndex:idx_active_subscription,where:status = 'ACTIVE'"`
	GicsSubCategory string     `json:"gics_sub_category,omitempty" gorm:"type:varchar(100);uniqueIndex:idx_active_subscription,where:status = 'ACTIVE'"`
	Status          Status     `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	StartDate       time.Time  `json:"start_date" gorm:"not null"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Subscription model
func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.StartDate.IsZero() {
		s.StartDate = time.Now().UTC()
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Subscription) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now()
	return nil
}

// CreateSubscriptionRequest is the subscription creation payload
type CreateSubscriptionRequest struct {
	GicsSector      string     `json:"gics_sector" binding:"required"`
	GicsSubCategory string     `json:"gics_sub_category"`
	EndDate         *time.Time `json:"end_date"`
}

// UpdateSubscriptionRequest is the subscription update payload; nil fields are untouched
type UpdateSubscriptionRequest struct {
	GicsSubCategory *string    `json:"gics_sub_category,omitempty"`
	Status          *Status    `json:"status,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
}

// Common errors
var (
	ErrNotFound        = NewError("subscription not found")
	ErrSectorRequired  = NewError("sector is required")
	ErrInvalidStatus   = NewError("invalid subscription status")
	ErrDuplicateActive = NewError("an active subscription already exists for this sector and sub-category")
	ErrNotOwner        = NewError("subscription belongs to another user")
)

// Error type
type Error struct {
	message string
}

func NewError(message string) *Error {
	return &Error{message: message}
}

func (e *Error) Error() string {
	return e.message
}

// IsValidStatus reports whether the given status is a known value
func IsValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive, StatusExpired:
		return true
	}
	return false
}
