package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepository struct {
	rows map[uuid.UUID]*Event
}

func newMemRepository() *memRepository {
	return &memRepository{rows: map[uuid.UUID]*Event{}}
}

func (m *memRepository) Create(ctx context.Context, e *Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	stored := *e
	m.rows[e.ID] = &stored
	return nil
}

func (m *memRepository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *row
	return &out, nil
}

func (m *memRepository) Update(ctx context.Context, e *Event) error {
	if _, ok := m.rows[e.ID]; !ok {
		return ErrNotFound
	}
	stored := *e
	m.rows[e.ID] = &stored
	return nil
}

func (m *memRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepository) List(ctx context.Context, filter Filter) ([]Event, int64, error) {
	var out []Event
	for _, row := range m.rows {
		out = append(out, *row)
	}
	return out, int64(len(out)), nil
}

func (m *memRepository) FindInRange(ctx context.Context, filter Filter) ([]Event, error) {
	events, _, err := m.List(ctx, filter)
	return events, err
}

func (m *memRepository) EventExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.rows[id]
	return ok, nil
}

func newTestService() (Service, *memRepository) {
	repo := newMemRepository()
	return NewService(repo, nil, zap.NewNop()), repo
}

func TestEventValidate(t *testing.T) {
	start := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)
	after := start.Add(time.Hour)

	tests := []struct {
		name     string
		event    Event
		expected error
	}{
		{
			name:     "valid event without end date",
			event:    Event{EventName: "Q2 Earnings Call", EventType: TypeEarningsCall, StartDate: start},
			expected: nil,
		},
		{
			name:     "valid event with later end date",
			event:    Event{EventName: "Conference", EventType: TypeConference, StartDate: start, EndDate: &after},
			expected: nil,
		},
		{
			name:     "missing name",
			event:    Event{EventType: TypeEarningsCall, StartDate: start},
			expected: ErrNameRequired,
		},
		{
			name:     "unknown event type",
			event:    Event{EventName: "Party", EventType: Type("PARTY"), StartDate: start},
			expected: ErrInvalidEventType,
		},
		{
			name:     "end date before start",
			event:    Event{EventName: "Roadshow", EventType: TypeRoadshow, StartDate: start, EndDate: &before},
			expected: ErrInvalidTimeRange,
		},
		{
			name:     "end date equal to start",
			event:    Event{EventName: "Roadshow", EventType: TypeRoadshow, StartDate: start, EndDate: &start},
			expected: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestCreateEventNormalizesToUTC(t *testing.T) {
	svc, _ := newTestService()

	loc := time.FixedZone("EST", -5*3600)
	created, err := svc.CreateEvent(context.Background(), CreateEventRequest{
		EventName: "Analyst Day",
		EventType: TypeAnalystDay,
		StartDate: time.Date(2024, 6, 10, 9, 0, 0, 0, loc),
	})
	require.NoError(t, err)

	assert.Equal(t, time.UTC, created.StartDate.Location())
	assert.Equal(t, 14, created.StartDate.Hour())
}

func TestUpdateEventPatchesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, CreateEventRequest{
		EventName:    "Investor Meeting",
		EventType:    TypeInvestorMeeting,
		Location:     "New York",
		TickerSymbol: "AAPL",
		StartDate:    time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	newLocation := "Boston"
	updated, err := svc.UpdateEvent(ctx, created.ID, UpdateEventRequest{Location: &newLocation})
	require.NoError(t, err)

	assert.Equal(t, "Boston", updated.Location)
	assert.Equal(t, "Investor Meeting", updated.EventName)
	assert.Equal(t, "AAPL", updated.TickerSymbol)
}

func TestUpdateEventRejectsInvalidPatch(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, CreateEventRequest{
		EventName: "Earnings Release",
		EventType: TypeEarningsRelease,
		StartDate: time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	badEnd := created.StartDate.Add(-time.Hour)
	_, err = svc.UpdateEvent(ctx, created.ID, UpdateEventRequest{EndDate: &badEnd})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	// The stored row keeps its original state
	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.EndDate)
}

func TestDeleteEventNotFound(t *testing.T) {
	svc, _ := newTestService()
	assert.ErrorIs(t, svc.DeleteEvent(context.Background(), uuid.New()), ErrNotFound)
}

func TestListEventsClampsLimit(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.ListEvents(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 50, resp.Limit)

	resp, err = svc.ListEvents(ctx, Filter{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Limit)
}
