package rsvp

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status represents a user's response to an event invitation
type Status string

const (
	StatusAccepted  Status = "ACCEPTED"
	StatusDeclined  Status = "DECLINED"
	StatusTentative Status = "TENTATIVE"
	StatusPending   Status = "PENDING"
)

// RSVP is a (user, event) response pair. The composite unique index makes
// the one-row-per-pair invariant a schema constraint rather than a
// check-then-write sequence, so concurrent upserts cannot produce duplicates.
type RSVP struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_rsvp_user_event"`
	EventID   uuid.UUID `json:"event_id" gorm:"type:uuid;not null;uniqueIndex:idx_rsvp_user_event;index:idx_rsvp_event"`
	Status    Status    `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the RSVP model
func (RSVP) TableName() string {
	return "rsvps"
}

func (r *RSVP) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	return nil
}

func (r *RSVP) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}

// StatusGroup is one status bucket of an event's RSVP list
type StatusGroup struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
	RSVPs  []RSVP `json:"rsvps"`
}

// EventSummary groups an event's RSVPs by status with counts
type EventSummary struct {
	EventID uuid.UUID     `json:"event_id"`
	Total   int           `json:"total"`
	Groups  []StatusGroup `json:"groups"`
}

// UpsertResult reports whether the upsert created a new record or
// overwrote an existing one.
type UpsertResult struct {
	RSVP    *RSVP `json:"rsvp"`
	Created bool  `json:"created"`
}

// Common errors
var (
	ErrInvalidStatus = NewError("invalid rsvp status")
	ErrEventNotFound = NewError("event not found")
	ErrNotFound      = NewError("rsvp not found")
	ErrDuplicate     = NewError("rsvp already exists for this user and event")
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

// IsValidStatus reports whether the given status is one of the four valid values
func IsValidStatus(s Status) bool {
	switch s {
	case StatusAccepted, StatusDeclined, StatusTentative, StatusPending:
		return true
	}
	return false
}
