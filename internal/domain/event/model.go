package event

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BenAji/agora/internal/domain/company"
	"github.com/BenAji/agora/internal/domain/rsvp"
)

// Type classifies a published calendar event
type Type string

const (
	TypeEarningsCall    Type = "EARNINGS_CALL"
	TypeEarningsRelease Type = "EARNINGS_RELEASE"
	TypeInvestorMeeting Type = "INVESTOR_MEETING"
	TypeConference      Type = "CONFERENCE"
	TypeRoadshow        Type = "ROADSHOW"
	TypeAnalystDay      Type = "ANALYST_DAY"
	TypeProductLaunch   Type = "PRODUCT_LAUNCH"
)

// Event is a scheduled occurrence published by an IR admin
type Event struct {
	ID              uuid.UUID        `json:"id" gorm:"type:uuid;primary_key"`
	EventName       string           `json:"event_name" gorm:"type:varchar(255);not null;index:idx_event_name"`
	EventType       Type             `json:"event_type" gorm:"type:varchar(50);not null;index:idx_event_type"`
	Description     string           `json:"description,omitempty" gorm:"type:text"`
	Location        string           `json:"location,omitempty" gorm:"type:varchar(255)"`
	TickerSymbol    string           `json:"ticker_symbol,omitempty" gorm:"type:varchar(12);index:idx_event_ticker"`
	GicsSector      string           `json:"gics_sector,omitempty" gorm:"type:varchar(100);index:idx_event_sector"`
	GicsSubCategory string           `json:"gics_sub_category,omitempty" gorm:"type:varchar(100)"`
	StartDate       time.Time        `json:"start_date" gorm:"not null;index:idx_event_start"`
	EndDate         *time.Time       `json:"end_date,omitempty"`
	HostCompanyID   *uuid.UUID       `json:"host_company_id,omitempty" gorm:"type:uuid"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	HostCompany     *company.Company `json:"host_company,omitempty" gorm:"foreignKey:HostCompanyID"`
	RSVPs           []rsvp.RSVP      `json:"rsvps,omitempty" gorm:"foreignKey:EventID"`
}

// TableName specifies the table name for the Event model
func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	return nil
}

func (e *Event) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	return nil
}

// CreateEventRequest is the admin-facing creation payload
type CreateEventRequest struct {
	EventName       string     `json:"event_name" binding:"required"`
	EventType       Type       `json:"event_type" binding:"required"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	TickerSymbol    string     `json:"ticker_symbol"`
	GicsSector      string     `json:"gics_sector"`
	GicsSubCategory string     `json:"gics_sub_category"`
	StartDate       time.Time  `json:"start_date" binding:"required"`
	EndDate         *time.Time `json:"end_date"`
	HostCompanyID   *uuid.UUID `json:"host_company_id"`
}

// UpdateEventRequest is the admin-facing update payload; nil fields are untouched
type UpdateEventRequest struct {
	EventName       *string    `json:"event_name,omitempty"`
	EventType       *Type      `json:"event_type,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Location        *string    `json:"location,omitempty"`
	TickerSymbol    *string    `json:"ticker_symbol,omitempty"`
	GicsSector      *string    `json:"gics_sector,omitempty"`
	GicsSubCategory *string    `json:"gics_sub_category,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
}

// EventListResponse carries a filtered page of events plus the total match count
type EventListResponse struct {
	Events []Event `json:"events"`
	Total  int64   `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// Filter narrows event queries. Optional fields are typed pointers consumed
// by one fixed query function rather than an incrementally built query object.
type Filter struct {
	Sector    *string
	EventType *Type
	Ticker    *string
	Tickers   []string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// Common errors
var (
	ErrNotFound         = NewError("event not found")
	ErrInvalidEventType = NewError("invalid event type")
	ErrInvalidTimeRange = NewError("end date must be after start date")
	ErrNameRequired     = NewError("event name is required")
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

// Validate checks invariants before the event is persisted
func (e *Event) Validate() error {
	if e.EventName == "" {
		return ErrNameRequired
	}
	if !IsValidType(e.EventType) {
		return ErrInvalidEventType
	}
	if e.EndDate != nil && !e.EndDate.After(e.StartDate) {
		return ErrInvalidTimeRange
	}
	return nil
}

// IsValidType reports whether the given type is one of the seven known values
func IsValidType(t Type) bool {
	switch t {
	case TypeEarningsCall, TypeEarningsRelease, TypeInvestorMeeting,
		TypeConference, TypeRoadshow, TypeAnalystDay, TypeProductLaunch:
		return true
	}
	return false
}
