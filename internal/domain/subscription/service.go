package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic interface for subscriptions
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateSubscriptionRequest) (*Subscription, error)
	Update(ctx context.Context, userID, id uuid.UUID, req UpdateSubscriptionRequest) (*Subscription, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error)
	ExpireDue(ctx context.Context) (int64, error)
}

// GridCache drops cached calendar grids. Cached grids embed the caller's
// active subscription list, so every subscription mutation must clear them.
type GridCache interface {
	DeletePattern(ctx context.Context, pattern string) error
}

type service struct {
	repo   Repository
	cache  GridCache
	logger *zap.Logger
}

// NewService creates a new subscription service instance
func NewService(repo Repository, cache GridCache, logger *zap.Logger) Service {
	return &service{repo: repo, cache: cache, logger: logger}
}

// Create registers a new ACTIVE subscription. The schema-level partial
// unique index rejects a duplicate active tuple; the insert is the check.
func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateSubscriptionRequest) (*Subscription, error) {
	if req.GicsSector == "" {
		return nil, ErrSectorRequired
	}

	sub := &Subscription{
		UserID:          userID,
		GicsSector:      req.GicsSector,
		GicsSubCategory: req.GicsSubCategory,
		Status:          StatusActive,
		StartDate:       time.Now().UTC(),
		EndDate:         req.EndDate,
	}

	if err := s.repo.Insert(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("subscription created",
		zap.String("user_id", userID.String()),
		zap.String("sector", sub.GicsSector),
	)

	s.invalidateCalendarCache(ctx, userID)
	return sub, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, req UpdateSubscriptionRequest) (*Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, ErrNotOwner
	}

	if req.GicsSubCategory != nil {
		sub.GicsSubCategory = *req.GicsSubCategory
	}
	if req.Status != nil {
		if !IsValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		sub.Status = *req.Status
	}
	if req.EndDate != nil {
		sub.EndDate = req.EndDate
	}

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.invalidateCalendarCache(ctx, userID)
	return sub, nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sub.UserID != userID {
		return ErrNotOwner
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCalendarCache(ctx, userID)
	return nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error) {
	return s.repo.ListActiveByUser(ctx, userID)
}

// ExpireDue flips past-end-date ACTIVE subscriptions to EXPIRED. The sweep
// does not know which users it touched, so it clears every cached grid.
func (s *service) ExpireDue(ctx context.Context) (int64, error) {
	count, err := s.repo.ExpireDue(ctx, time.Now().UTC())
	if err != nil {
		return count, err
	}
	if count > 0 && s.cache != nil {
		if cacheErr := s.cache.DeletePattern(ctx, "calendar:grid:*"); cacheErr != nil {
			s.logger.Error("failed to invalidate calendar cache", zap.Error(cacheErr))
		}
	}
	return count, nil
}

func (s *service) invalidateCalendarCache(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "calendar:grid:"+userID.String()+":*"); err != nil {
		s.logger.Error("failed to invalidate calendar cache", zap.Error(err))
	}
}
