package rsvp

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BenAji/agora/internal/infrastructure/cache"
)

// EventChecker verifies that an event exists before an RSVP is attached to it
type EventChecker interface {
	EventExists(ctx context.Context, eventID uuid.UUID) (bool, error)
}

// Service defines the business logic interface for RSVPs
type Service interface {
	Upsert(ctx context.Context, userID, eventID uuid.UUID, status Status) (*UpsertResult, error)
	Delete(ctx context.Context, userID, eventID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]RSVP, error)
	SummarizeEvent(ctx context.Context, eventID uuid.UUID) (*EventSummary, error)
}

type service struct {
	repo   Repository
	events EventChecker
	redis  *cache.RedisClient
	logger *zap.Logger
}

// NewService creates a new RSVP service instance
func NewService(repo Repository, events EventChecker, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{repo: repo, events: events, redis: redis, logger: logger}
}

// Upsert creates the user's RSVP for the event, or overwrites its status if
// one already exists. The insert is attempted first; the unique index on
// (user_id, event_id) turns a concurrent duplicate into ErrDuplicate, which
// routes to the update path. One conditional write, no race window.
func (s *service) Upsert(ctx context.Context, userID, eventID uuid.UUID, status Status) (*UpsertResult, error) {
	if !IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	exists, err := s.events.EventExists(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEventNotFound
	}

	rec := &RSVP{
		UserID:  userID,
		EventID: eventID,
		Status:  status,
	}

	err = s.repo.Insert(ctx, rec)
	if err == nil {
		s.invalidateCalendarCache(ctx, userID)
		return &UpsertResult{RSVP: rec, Created: true}, nil
	}
	if !errors.Is(err, ErrDuplicate) {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, userID, eventID, status)
	if err != nil {
		return nil, err
	}

	s.invalidateCalendarCache(ctx, userID)
	return &UpsertResult{RSVP: updated, Created: false}, nil
}

func (s *service) Delete(ctx context.Context, userID, eventID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, eventID); err != nil {
		return err
	}
	s.invalidateCalendarCache(ctx, userID)
	return nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]RSVP, error) {
	return s.repo.ListByUser(ctx, userID)
}

// SummarizeEvent lists an event's RSVPs grouped by status with counts
func (s *service) SummarizeEvent(ctx context.Context, eventID uuid.UUID) (*EventSummary, error) {
	exists, err := s.events.EventExists(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEventNotFound
	}

	rsvps, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	summary := &EventSummary{EventID: eventID, Total: len(rsvps)}
	for _, status := range []Status{StatusAccepted, StatusDeclined, StatusTentative, StatusPending} {
		group := StatusGroup{Status: status, RSVPs: []RSVP{}}
		for _, rec := range rsvps {
			if rec.Status == status {
				group.RSVPs = append(group.RSVPs, rec)
			}
		}
		group.Count = len(group.RSVPs)
		summary.Groups = append(summary.Groups, group)
	}

	return summary, nil
}

func (s *service) invalidateCalendarCache(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.DeletePattern(ctx, "calendar:grid:"+userID.String()+":*"); err != nil {
		s.logger.Error("failed to invalidate calendar cache", zap.Error(err))
	}
}
