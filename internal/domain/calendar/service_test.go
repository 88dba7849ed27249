package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BenAji/agora/internal/domain/company"
	"github.com/BenAji/agora/internal/domain/event"
	"github.com/BenAji/agora/internal/domain/rsvp"
	"github.com/BenAji/agora/internal/domain/subscription"
)

type stubEvents struct {
	events []event.Event
}

func (s *stubEvents) FindInRange(ctx context.Context, filter event.Filter) ([]event.Event, error) {
	return s.events, nil
}

type stubCatalog struct {
	companies []company.GicsCompany
}

func (s *stubCatalog) ListGicsCompanies(ctx context.Context) ([]company.GicsCompany, error) {
	return s.companies, nil
}

type stubSubs struct {
	subs []subscription.Subscription
}

func (s *stubSubs) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]subscription.Subscription, error) {
	return s.subs, nil
}

func newTestService(events []event.Event, companies []company.GicsCompany, subs []subscription.Subscription) Service {
	return NewService(
		&stubEvents{events: events},
		&stubCatalog{companies: companies},
		&stubSubs{subs: subs},
		nil,
		zap.NewNop(),
	)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDateAxis(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{
			name:     "full March has 31 days",
			start:    date(2024, time.March, 1),
			end:      date(2024, time.March, 31),
			expected: 31,
		},
		{
			name:     "single day",
			start:    date(2024, time.March, 15),
			end:      date(2024, time.March, 15),
			expected: 1,
		},
		{
			name:     "inverted range is empty",
			start:    date(2024, time.March, 31),
			end:      date(2024, time.March, 1),
			expected: 0,
		},
		{
			name:     "range crossing a month boundary",
			start:    date(2024, time.February, 28),
			end:      date(2024, time.March, 2),
			expected: 4, // leap year: Feb 28, 29, Mar 1, 2
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axis := buildDateAxis(tt.start, tt.end)
			assert.Len(t, axis, tt.expected)
			if tt.expected > 0 {
				assert.Equal(t, tt.start.Format(dateKey), axis[0])
				assert.Equal(t, tt.end.Format(dateKey), axis[len(axis)-1])
			}
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name     string
		anchor   time.Time
		expected time.Time
	}{
		{
			name:     "Wednesday maps to its Monday",
			anchor:   date(2024, time.March, 13),
			expected: date(2024, time.March, 11),
		},
		{
			name:     "Monday maps to itself",
			anchor:   date(2024, time.March, 11),
			expected: date(2024, time.March, 11),
		},
		{
			name:     "Sunday maps to the previous Monday",
			anchor:   date(2024, time.March, 17),
			expected: date(2024, time.March, 11),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, startOfWeek(tt.anchor))
		})
	}
}

func TestBuildMonthGrid(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()

	catalog := []company.GicsCompany{
		{ID: uuid.New(), TickerSymbol: "AAPL", CompanyName: "Apple Inc.", GicsSector: "Information Technology"},
		{ID: uuid.New(), TickerSymbol: "JPM", CompanyName: "JPMorgan Chase", GicsSector: "Financials"},
		{ID: uuid.New(), TickerSymbol: "XOM", CompanyName: "Exxon Mobil", GicsSector: "Energy"},
	}

	appleEvent := event.Event{
		ID:           uuid.New(),
		EventName:    "Q1 Earnings Call",
		EventType:    event.TypeEarningsCall,
		TickerSymbol: "AAPL",
		StartDate:    date(2024, time.March, 5),
		RSVPs: []rsvp.RSVP{
			{ID: uuid.New(), UserID: userID, Status: rsvp.StatusAccepted},
			{ID: uuid.New(), UserID: otherID, Status: rsvp.StatusDeclined},
		},
	}
	jpmEvent := event.Event{
		ID:           uuid.New(),
		EventName:    "Investor Day",
		EventType:    event.TypeAnalystDay,
		TickerSymbol: "JPM",
		StartDate:    date(2024, time.March, 12),
		RSVPs:        []rsvp.RSVP{{ID: uuid.New(), UserID: otherID, Status: rsvp.StatusAccepted}},
	}

	svc := newTestService([]event.Event{appleEvent, jpmEvent}, catalog, nil)

	start := date(2024, time.March, 1)
	end := date(2024, time.March, 31)
	grid, err := svc.BuildMonthGrid(context.Background(), GridOptions{StartDate: &start, EndDate: &end}, userID)
	require.NoError(t, err)

	// Every catalog company gets a row, with or without events
	require.Len(t, grid.Grid, 3)
	assert.Len(t, grid.DateAxis, 31)

	var appleRow, xomRow *CompanyRow
	for i := range grid.Grid {
		switch grid.Grid[i].Company.TickerSymbol {
		case "AAPL":
			appleRow = &grid.Grid[i]
		case "XOM":
			xomRow = &grid.Grid[i]
		}
	}
	require.NotNil(t, appleRow)
	require.NotNil(t, xomRow)

	entries := appleRow.EventsByDate["2024-03-05"]
	require.Len(t, entries, 1)
	assert.Equal(t, "Q1 Earnings Call", entries[0].Event.EventName)
	assert.Equal(t, 2, entries[0].RSVPCount)
	require.NotNil(t, entries[0].MyRSVP)
	assert.Equal(t, rsvp.StatusAccepted, entries[0].MyRSVP.Status)
	// Individual responses must not leak through the grid
	assert.Nil(t, entries[0].Event.RSVPs)

	assert.Empty(t, xomRow.EventsByDate)

	assert.Equal(t, 2, grid.Statistics.TotalEvents)
	assert.Equal(t, 1, grid.Statistics.MyRSVPCount)
	assert.Equal(t, 1, grid.Statistics.EventsByType[event.TypeEarningsCall])
	assert.Equal(t, 1, grid.Statistics.EventsByType[event.TypeAnalystDay])

	assert.NotNil(t, grid.ActiveSubscriptions)
	assert.Empty(t, grid.ActiveSubscriptions)
}

func TestBuildMonthGridInvertedRange(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	start := date(2024, time.March, 31)
	end := date(2024, time.March, 1)
	grid, err := svc.BuildMonthGrid(context.Background(), GridOptions{StartDate: &start, EndDate: &end}, uuid.New())
	require.NoError(t, err)

	assert.Empty(t, grid.DateAxis)
	assert.Equal(t, 0, grid.Statistics.TotalEvents)
}

func TestBuildWeekGrid(t *testing.T) {
	userID := uuid.New()

	mine := event.Event{
		ID:           uuid.New(),
		EventName:    "Roadshow Stop",
		EventType:    event.TypeRoadshow,
		TickerSymbol: "AAPL",
		StartDate:    date(2024, time.March, 13), // Wednesday
		RSVPs:        []rsvp.RSVP{{ID: uuid.New(), UserID: userID, Status: rsvp.StatusTentative}},
	}
	notMine := event.Event{
		ID:           uuid.New(),
		EventName:    "Product Launch",
		EventType:    event.TypeProductLaunch,
		TickerSymbol: "JPM",
		StartDate:    date(2024, time.March, 14),
		RSVPs:        []rsvp.RSVP{{ID: uuid.New(), UserID: uuid.New(), Status: rsvp.StatusAccepted}},
	}

	svc := newTestService([]event.Event{mine, notMine}, nil, nil)

	week, err := svc.BuildWeekGrid(context.Background(), date(2024, time.March, 15), userID)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-11", week.WeekStart)
	assert.Equal(t, "2024-03-17", week.WeekEnd)
	require.Len(t, week.Days, 7)
	assert.Equal(t, "Monday", week.Days[0].Weekday)

	var total int
	for _, day := range week.Days {
		total += len(day.Events)
	}
	// Only the RSVP'd event shows up in the week view
	assert.Equal(t, 1, total)

	wednesday := week.Days[2]
	require.Len(t, wednesday.Events, 1)
	assert.Equal(t, "Roadshow Stop", wednesday.Events[0].Event.EventName)
	require.NotNil(t, wednesday.Events[0].MyRSVP)
	assert.Equal(t, rsvp.StatusTentative, wednesday.Events[0].MyRSVP.Status)
}
