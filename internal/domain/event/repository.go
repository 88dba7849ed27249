package event

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BenAji/agora/internal/domain/rsvp"
)

// Repository defines the data access methods for events
type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter Filter) ([]Event, int64, error)
	FindInRange(ctx context.Context, filter Filter) ([]Event, error)
	EventExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new event repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).
		Preload("HostCompany").
		Preload("RSVPs").
		First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// Delete removes the event and its dependent RSVPs in one transaction
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&rsvp.RSVP{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Event{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func applyFilter(query *gorm.DB, filter Filter) *gorm.DB {
	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where("start_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	} else if filter.StartDate != nil {
		query = query.Where("start_date >= ?", filter.StartDate)
	} else if filter.EndDate != nil {
		query = query.Where("start_date <= ?", filter.EndDate)
	}
	if filter.Sector != nil {
		query = query.Where("gics_sector = ?", *filter.Sector)
	}
	if filter.EventType != nil {
		query = query.Where("event_type = ?", *filter.EventType)
	}
	if filter.Ticker != nil {
		query = query.Where("ticker_symbol = ?", *filter.Ticker)
	}
	if len(filter.Tickers) > 0 {
		query = query.Where("ticker_symbol IN ?", filter.Tickers)
	}
	return query
}

func (r *repository) List(ctx context.Context, filter Filter) ([]Event, int64, error) {
	var events []Event
	var total int64

	query := applyFilter(r.db.WithContext(ctx).Model(&Event{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	err := query.
		Order("start_date ASC").
		Preload("HostCompany").
		Preload("RSVPs").
		Find(&events).Error

	return events, total, err
}

// FindInRange fetches every event matching the filter with its RSVP list,
// unpaginated. The calendar aggregator consumes this.
func (r *repository) FindInRange(ctx context.Context, filter Filter) ([]Event, error) {
	var events []Event
	err := applyFilter(r.db.WithContext(ctx).Model(&Event{}), filter).
		Order("start_date ASC").
		Preload("RSVPs").
		Find(&events).Error
	return events, err
}

func (r *repository) EventExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
