package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memRepository mirrors the partial unique index: at most one ACTIVE row
// per (user, sector, sub-category) tuple.
type memRepository struct {
	rows map[uuid.UUID]*Subscription
}

func newMemRepository() *memRepository {
	return &memRepository{rows: map[uuid.UUID]*Subscription{}}
}

func (m *memRepository) activeConflict(s *Subscription) bool {
	for _, row := range m.rows {
		if row.ID == s.ID {
			continue
		}
		if row.Status == StatusActive && s.Status == StatusActive &&
			row.UserID == s.UserID &&
			row.GicsSector == s.GicsSector &&
			row.GicsSubCategory == s.GicsSubCategory {
			return true
		}
	}
	return false
}

func (m *memRepository) Insert(ctx context.Context, s *Subscription) error {
	if m.activeConflict(s) {
		return ErrDuplicateActive
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	stored := *s
	m.rows[s.ID] = &stored
	return nil
}

func (m *memRepository) GetByID(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *row
	return &out, nil
}

func (m *memRepository) Update(ctx context.Context, s *Subscription) error {
	if _, ok := m.rows[s.ID]; !ok {
		return ErrNotFound
	}
	if m.activeConflict(s) {
		return ErrDuplicateActive
	}
	stored := *s
	m.rows[s.ID] = &stored
	return nil
}

func (m *memRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error) {
	var out []Subscription
	for _, row := range m.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error) {
	var out []Subscription
	for _, row := range m.rows {
		if row.UserID == userID && row.Status == StatusActive {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	for _, row := range m.rows {
		if row.Status == StatusActive && row.EndDate != nil && row.EndDate.Before(now) {
			row.Status = StatusExpired
			count++
		}
	}
	return count, nil
}

// recordingCache captures the patterns handed to DeletePattern
type recordingCache struct {
	patterns []string
}

func (r *recordingCache) DeletePattern(ctx context.Context, pattern string) error {
	r.patterns = append(r.patterns, pattern)
	return nil
}

func newTestService() (Service, *memRepository) {
	repo := newMemRepository()
	return NewService(repo, nil, zap.NewNop()), repo
}

func newTestServiceWithCache() (Service, *memRepository, *recordingCache) {
	repo := newMemRepository()
	cache := &recordingCache{}
	return NewService(repo, cache, zap.NewNop()), repo, cache
}

func TestCreateSubscription(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()

	sub, err := svc.Create(context.Background(), userID, CreateSubscriptionRequest{
		GicsSector:      "Financials",
		GicsSubCategory: "Banks",
	})
	require.NoError(t, err)

	assert.Equal(t, userID, sub.UserID)
	assert.Equal(t, StatusActive, sub.Status)
	assert.False(t, sub.StartDate.IsZero())
}

func TestCreateRequiresSector(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), uuid.New(), CreateSubscriptionRequest{})
	assert.ErrorIs(t, err, ErrSectorRequired)
}

func TestCreateDuplicateActive(t *testing.T) {
	svc, repo := newTestService()
	userID := uuid.New()
	ctx := context.Background()

	req := CreateSubscriptionRequest{GicsSector: "Energy"}
	_, err := svc.Create(ctx, userID, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, userID, req)
	assert.ErrorIs(t, err, ErrDuplicateActive)
	assert.Len(t, repo.rows, 1)

	// Same sector with a sub-category is a different tuple
	_, err = svc.Create(ctx, userID, CreateSubscriptionRequest{
		GicsSector:      "Energy",
		GicsSubCategory: "Oil & Gas",
	})
	assert.NoError(t, err)

	// Another user may hold the same tuple
	_, err = svc.Create(ctx, uuid.New(), req)
	assert.NoError(t, err)
}

func TestUpdateOwnershipCheck(t *testing.T) {
	svc, repo := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	sub, err := svc.Create(ctx, owner, CreateSubscriptionRequest{GicsSector: "Utilities"})
	require.NoError(t, err)

	inactive := StatusInactive
	_, err = svc.Update(ctx, uuid.New(), sub.ID, UpdateSubscriptionRequest{Status: &inactive})
	assert.ErrorIs(t, err, ErrNotOwner)

	// Record untouched after the rejected update
	stored, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, stored.Status)

	updated, err := svc.Update(ctx, owner, sub.ID, UpdateSubscriptionRequest{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, updated.Status)
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	ctx := context.Background()

	sub, err := svc.Create(ctx, userID, CreateSubscriptionRequest{GicsSector: "Materials"})
	require.NoError(t, err)

	bad := Status("PAUSED")
	_, err = svc.Update(ctx, userID, sub.ID, UpdateSubscriptionRequest{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteOwnershipCheck(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	sub, err := svc.Create(ctx, owner, CreateSubscriptionRequest{GicsSector: "Industrials"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), sub.ID), ErrNotOwner)
	assert.NoError(t, svc.Delete(ctx, owner, sub.ID))
	assert.ErrorIs(t, svc.Delete(ctx, owner, sub.ID), ErrNotFound)
}

func TestReactivationAfterExpiry(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	ctx := context.Background()

	past := time.Now().UTC().Add(-time.Hour)
	_, err := svc.Create(ctx, userID, CreateSubscriptionRequest{
		GicsSector: "Health Care",
		EndDate:    &past,
	})
	require.NoError(t, err)

	expired, err := svc.ExpireDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	active, err := svc.ListActiveByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, active)

	// The tuple is free again once the old row is EXPIRED
	_, err = svc.Create(ctx, userID, CreateSubscriptionRequest{GicsSector: "Health Care"})
	assert.NoError(t, err)
}

func TestMutationsInvalidateCalendarCache(t *testing.T) {
	svc, _, cache := newTestServiceWithCache()
	userID := uuid.New()
	ctx := context.Background()

	sub, err := svc.Create(ctx, userID, CreateSubscriptionRequest{GicsSector: "Financials"})
	require.NoError(t, err)

	inactive := StatusInactive
	_, err = svc.Update(ctx, userID, sub.ID, UpdateSubscriptionRequest{Status: &inactive})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, sub.ID))

	// Each mutation clears the owner's cached grids so the next calendar
	// read reflects the new subscription list
	want := "calendar:grid:" + userID.String() + ":*"
	assert.Equal(t, []string{want, want, want}, cache.patterns)
}

func TestFailedMutationsLeaveCacheAlone(t *testing.T) {
	svc, _, cache := newTestServiceWithCache()
	owner := uuid.New()
	ctx := context.Background()

	sub, err := svc.Create(ctx, owner, CreateSubscriptionRequest{GicsSector: "Energy"})
	require.NoError(t, err)
	require.Len(t, cache.patterns, 1)

	// Rejected duplicate, foreign update, and foreign delete write nothing,
	// so they must not clear anything
	_, err = svc.Create(ctx, owner, CreateSubscriptionRequest{GicsSector: "Energy"})
	assert.ErrorIs(t, err, ErrDuplicateActive)

	inactive := StatusInactive
	_, err = svc.Update(ctx, uuid.New(), sub.ID, UpdateSubscriptionRequest{Status: &inactive})
	assert.ErrorIs(t, err, ErrNotOwner)

	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), sub.ID), ErrNotOwner)

	assert.Len(t, cache.patterns, 1)
}

func TestExpirySweepInvalidatesAllGrids(t *testing.T) {
	svc, _, cache := newTestServiceWithCache()
	ctx := context.Background()

	// Nothing due: the sweep must not clear anything
	expired, err := svc.ExpireDue(ctx)
	require.NoError(t, err)
	assert.Zero(t, expired)
	assert.Empty(t, cache.patterns)

	past := time.Now().UTC().Add(-time.Hour)
	_, err = svc.Create(ctx, uuid.New(), CreateSubscriptionRequest{
		GicsSector: "Utilities",
		EndDate:    &past,
	})
	require.NoError(t, err)

	expired, err = svc.ExpireDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	// The sweep does not know which users it touched
	assert.Equal(t, "calendar:grid:*", cache.patterns[len(cache.patterns)-1])
}
