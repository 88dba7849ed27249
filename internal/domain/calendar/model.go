package calendar

import (
	"time"

	"github.com/BenAji/agora/internal/domain/company"
	"github.com/BenAji/agora/internal/domain/event"
	"github.com/BenAji/agora/internal/domain/rsvp"
	"github.com/BenAji/agora/internal/domain/subscription"
)

// dateKey is the local-date layout used for grid buckets and the axis
const dateKey = "2006-01-02"

// DateRange is an inclusive calendar-day span
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// EventEntry is an event with the requesting user's own RSVP overlaid.
// Other users' RSVPs appear only in the aggregate count.
type EventEntry struct {
	Event     event.Event `json:"event"`
	MyRSVP    *rsvp.RSVP  `json:"my_rsvp,omitempty"`
	RSVPCount int         `json:"rsvp_count"`
}

// CompanyRow is one grid row: a GICS company and its events keyed by date
type CompanyRow struct {
	Company      company.GicsCompany     `json:"company"`
	EventsByDate map[string][]EventEntry `json:"events_by_date"`
}

// Statistics summarizes the events in range
type Statistics struct {
	TotalEvents  int                `json:"total_events"`
	MyRSVPCount  int                `json:"my_rsvp_count"`
	EventsByType map[event.Type]int `json:"events_by_type"`
}

// MonthGrid is the company × date view of events in range
type MonthGrid struct {
	Grid                []CompanyRow                `json:"grid"`
	DateAxis            []string                    `json:"date_axis"`
	DateRange           DateRange                   `json:"date_range"`
	ActiveSubscriptions []subscription.Subscription `json:"active_subscriptions"`
	Statistics          Statistics                  `json:"statistics"`
}

// WeekDay is one bucket of the week view
type WeekDay struct {
	Date    string       `json:"date"`
	Weekday string       `json:"weekday"`
	Events  []EventEntry `json:"events"`
}

// WeekGrid is the Monday-start "my week" view: only events the requesting
// user has RSVP'd to appear.
type WeekGrid struct {
	WeekStart string    `json:"week_start"`
	WeekEnd   string    `json:"week_end"`
	Days      []WeekDay `json:"days"`
}

// GridOptions narrows the month grid. Nil fields fall back to defaults.
type GridOptions struct {
	StartDate *time.Time
	EndDate   *time.Time
	Sector    *string
	EventType *event.Type
	Tickers   []string
}
