package rsvp

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pair struct {
	userID  uuid.UUID
	eventID uuid.UUID
}

// memRepository enforces the same one-row-per-(user,event) invariant the
// unique index provides in Postgres.
type memRepository struct {
	rows map[pair]*RSVP
}

func newMemRepository() *memRepository {
	return &memRepository{rows: map[pair]*RSVP{}}
}

func (m *memRepository) Insert(ctx context.Context, rec *RSVP) error {
	key := pair{rec.UserID, rec.EventID}
	if _, ok := m.rows[key]; ok {
		return ErrDuplicate
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	stored := *rec
	m.rows[key] = &stored
	return nil
}

func (m *memRepository) UpdateStatus(ctx context.Context, userID, eventID uuid.UUID, status Status) (*RSVP, error) {
	rec, ok := m.rows[pair{userID, eventID}]
	if !ok {
		return nil, ErrNotFound
	}
	rec.Status = status
	out := *rec
	return &out, nil
}

func (m *memRepository) Get(ctx context.Context, userID, eventID uuid.UUID) (*RSVP, error) {
	rec, ok := m.rows[pair{userID, eventID}]
	if !ok {
		return nil, ErrNotFound
	}
	out := *rec
	return &out, nil
}

func (m *memRepository) Delete(ctx context.Context, userID, eventID uuid.UUID) error {
	key := pair{userID, eventID}
	if _, ok := m.rows[key]; !ok {
		return ErrNotFound
	}
	delete(m.rows, key)
	return nil
}

func (m *memRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]RSVP, error) {
	var out []RSVP
	for key, rec := range m.rows {
		if key.userID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]RSVP, error) {
	var out []RSVP
	for key, rec := range m.rows {
		if key.eventID == eventID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type stubEvents struct {
	known map[uuid.UUID]bool
}

func (s *stubEvents) EventExists(ctx context.Context, eventID uuid.UUID) (bool, error) {
	return s.known[eventID], nil
}

func newTestService(eventIDs ...uuid.UUID) (Service, *memRepository) {
	repo := newMemRepository()
	known := map[uuid.UUID]bool{}
	for _, id := range eventIDs {
		known[id] = true
	}
	return NewService(repo, &stubEvents{known: known}, nil, zap.NewNop()), repo
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	eventID := uuid.New()
	userID := uuid.New()
	svc, repo := newTestService(eventID)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, userID, eventID, StatusTentative)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, StatusTentative, first.RSVP.Status)

	second, err := svc.Upsert(ctx, userID, eventID, StatusAccepted)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, StatusAccepted, second.RSVP.Status)

	// Still exactly one row for the pair, holding the last status
	assert.Len(t, repo.rows, 1)
	stored, err := repo.Get(ctx, userID, eventID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, stored.Status)
}

func TestUpsertRejectsInvalidStatus(t *testing.T) {
	eventID := uuid.New()
	svc, _ := newTestService(eventID)

	_, err := svc.Upsert(context.Background(), uuid.New(), eventID, Status("MAYBE"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpsertRejectsUnknownEvent(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Upsert(context.Background(), uuid.New(), uuid.New(), StatusAccepted)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestDelete(t *testing.T) {
	eventID := uuid.New()
	userID := uuid.New()
	svc, _ := newTestService(eventID)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, userID, eventID, StatusAccepted)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, eventID))

	// A second delete finds nothing
	assert.ErrorIs(t, svc.Delete(ctx, userID, eventID), ErrNotFound)
}

func TestSummarizeEvent(t *testing.T) {
	eventID := uuid.New()
	svc, _ := newTestService(eventID)
	ctx := context.Background()

	statuses := []Status{StatusAccepted, StatusAccepted, StatusDeclined, StatusTentative}
	for _, status := range statuses {
		_, err := svc.Upsert(ctx, uuid.New(), eventID, status)
		require.NoError(t, err)
	}

	summary, err := svc.SummarizeEvent(ctx, eventID)
	require.NoError(t, err)

	assert.Equal(t, eventID, summary.EventID)
	assert.Equal(t, 4, summary.Total)
	require.Len(t, summary.Groups, 4)

	counts := map[Status]int{}
	for _, group := range summary.Groups {
		counts[group.Status] = group.Count
		assert.Len(t, group.RSVPs, group.Count)
	}
	assert.Equal(t, 2, counts[StatusAccepted])
	assert.Equal(t, 1, counts[StatusDeclined])
	assert.Equal(t, 1, counts[StatusTentative])
	assert.Equal(t, 0, counts[StatusPending])
}

func TestSummarizeUnknownEvent(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.SummarizeEvent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range []Status{StatusAccepted, StatusDeclined, StatusTentative, StatusPending} {
		assert.True(t, IsValidStatus(status))
	}
	assert.False(t, IsValidStatus(Status("")))
	assert.False(t, IsValidStatus(Status("accepted")))
}
