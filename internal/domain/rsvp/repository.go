package rsvp

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Repository defines the data access methods for RSVPs
type Repository interface {
	Insert(ctx context.Context, r *RSVP) error
	UpdateStatus(ctx context.Context, userID, eventID uuid.UUID, status Status) (*RSVP, error)
	Get(ctx context.Context, userID, eventID uuid.UUID) (*RSVP, error)
	Delete(ctx context.Context, userID, eventID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]RSVP, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]RSVP, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new RSVP repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// uniqueViolation is the PostgreSQL error code for a unique constraint violation
const uniqueViolation = "23505"

// Insert creates a new RSVP row. A constraint violation on the
// (user_id, event_id) index is reported as ErrDuplicate so the caller
// can take the update path without a prior existence check.
func (r *repository) Insert(ctx context.Context, rec *RSVP) error {
	err := r.db.WithContext(ctx).Create(rec).Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, userID, eventID uuid.UUID, status Status) (*RSVP, error) {
	res := r.db.WithContext(ctx).
		Model(&RSVP{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, userID, eventID)
}

func (r *repository) Get(ctx context.Context, userID, eventID uuid.UUID) (*RSVP, error) {
	var rec RSVP
	err := r.db.WithContext(ctx).
		First(&rec, "user_id = ? AND event_id = ?", userID, eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Delete removes the row unconditionally. No soft-delete.
func (r *repository) Delete(ctx context.Context, userID, eventID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&RSVP{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]RSVP, error) {
	var rsvps []RSVP
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rsvps).Error
	return rsvps, err
}

func (r *repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]RSVP, error) {
	var rsvps []RSVP
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&rsvps).Error
	return rsvps, err
}
