package event

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BenAji/agora/internal/infrastructure/cache"
)

// Service defines the business logic interface for events
type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	ListEvents(ctx context.Context, filter Filter) (*EventListResponse, error)
}

type service struct {
	repo   Repository
	redis  *cache.RedisClient
	logger *zap.Logger
}

// NewService creates a new event service instance
func NewService(repo Repository, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{repo: repo, redis: redis, logger: logger}
}

func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	e := &Event{
		EventName:       req.EventName,
		EventType:       req.EventType,
		Description:     req.Description,
		Location:        req.Location,
		TickerSymbol:    req.TickerSymbol,
		GicsSector:      req.GicsSector,
		GicsSubCategory: req.GicsSubCategory,
		StartDate:       req.StartDate.UTC(),
		HostCompanyID:   req.HostCompanyID,
	}
	if req.EndDate != nil {
		utc := req.EndDate.UTC()
		e.EndDate = &utc
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("event published",
		zap.String("event_id", e.ID.String()),
		zap.String("event_type", string(e.EventType)),
	)
	s.invalidateCalendarCache(ctx)

	return e, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.EventName != nil {
		e.EventName = *req.EventName
	}
	if req.EventType != nil {
		e.EventType = *req.EventType
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.TickerSymbol != nil {
		e.TickerSymbol = *req.TickerSymbol
	}
	if req.GicsSector != nil {
		e.GicsSector = *req.GicsSector
	}
	if req.GicsSubCategory != nil {
		e.GicsSubCategory = *req.GicsSubCategory
	}
	if req.StartDate != nil {
		e.StartDate = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		utc := req.EndDate.UTC()
		e.EndDate = &utc
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	s.invalidateCalendarCache(ctx)
	return e, nil
}

func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("event deleted", zap.String("event_id", id.String()))
	s.invalidateCalendarCache(ctx)
	return nil
}

func (s *service) ListEvents(ctx context.Context, filter Filter) (*EventListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}

	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &EventListResponse{
		Events: events,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// Event mutations change every user's grid, so the whole grid cache goes.
func (s *service) invalidateCalendarCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.DeletePattern(ctx, "calendar:grid:*"); err != nil {
		s.logger.Error("failed to invalidate calendar cache", zap.Error(err))
	}
}
