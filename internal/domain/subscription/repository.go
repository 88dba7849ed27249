package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Repository defines the data access methods for subscriptions
type Repository interface {
	Insert(ctx context.Context, s *Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Subscription, error)
	Update(ctx context.Context, s *Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error)
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new subscription repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const uniqueViolation = "23505"

// Insert creates the subscription row. The partial unique index rejects a
// second ACTIVE row for the same tuple; the violation surfaces as
// ErrDuplicateActive so no prior existence check is needed.
func (r *repository) Insert(ctx context.Context, s *Subscription) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateActive
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	var s Subscription
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *Subscription) error {
	err := r.db.WithContext(ctx).Save(s).Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateActive
		}
		return err
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Subscription{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error) {
	var subs []Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *repository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error) {
	var subs []Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, StatusActive).
		Order("gics_sector ASC").
		Find(&subs).Error
	return subs, err
}

// ExpireDue marks ACTIVE subscriptions whose end date has passed as EXPIRED
func (r *repository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Subscription{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", StatusActive, now).
		Update("status", StatusExpired)
	return res.RowsAffected, res.Error
}
