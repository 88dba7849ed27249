package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BenAji/agora/internal/domain/company"
	"github.com/BenAji/agora/internal/domain/event"
	"github.com/BenAji/agora/internal/domain/rsvp"
	"github.com/BenAji/agora/internal/domain/subscription"
	"github.com/BenAji/agora/internal/infrastructure/cache"
)

// EventSource supplies events in a date range with their RSVP lists
type EventSource interface {
	FindInRange(ctx context.Context, filter event.Filter) ([]event.Event, error)
}

// CompanyCatalog supplies the GICS catalog that fixes the grid's row axis
type CompanyCatalog interface {
	ListGicsCompanies(ctx context.Context) ([]company.GicsCompany, error)
}

// SubscriptionSource supplies the requesting user's active subscriptions
type SubscriptionSource interface {
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]subscription.Subscription, error)
}

// Service builds the aggregated calendar views
type Service interface {
	BuildMonthGrid(ctx context.Context, opts GridOptions, userID uuid.UUID) (*MonthGrid, error)
	BuildWeekGrid(ctx context.Context, anchor time.Time, userID uuid.UUID) (*WeekGrid, error)
}

type service struct {
	events        EventSource
	companies     CompanyCatalog
	subscriptions SubscriptionSource
	redis         *cache.RedisClient
	logger        *zap.Logger
}

// NewService creates a new calendar service instance
func NewService(events EventSource, companies CompanyCatalog, subscriptions SubscriptionSource, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{
		events:        events,
		companies:     companies,
		subscriptions: subscriptions,
		redis:         redis,
		logger:        logger,
	}
}

// BuildMonthGrid assembles the company × date grid for the range.
// The range defaults to the current calendar month. A start after end is
// taken as given and yields an empty date axis.
func (s *service) BuildMonthGrid(ctx context.Context, opts GridOptions, userID uuid.UUID) (*MonthGrid, error) {
	start, end := resolveRange(opts.StartDate, opts.EndDate)

	cacheKey := s.gridCacheKey(userID, start, end, opts)
	if s.redis != nil {
		var cached MonthGrid
		if err := s.redis.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	filter := event.Filter{
		StartDate: &start,
		EndDate:   &end,
		Sector:    opts.Sector,
		EventType: opts.EventType,
		Tickers:   opts.Tickers,
	}
	events, err := s.events.FindInRange(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	catalog, err := s.companies.ListGicsCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company catalog: %w", err)
	}

	subs, err := s.subscriptions.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions: %w", err)
	}
	if subs == nil {
		subs = []subscription.Subscription{}
	}

	grid := make([]CompanyRow, 0, len(catalog))
	for _, c := range catalog {
		row := CompanyRow{Company: c, EventsByDate: map[string][]EventEntry{}}
		for _, e := range events {
			if !strings.EqualFold(e.TickerSymbol, c.TickerSymbol) {
				continue
			}
			day := e.StartDate.Format(dateKey)
			row.EventsByDate[day] = append(row.EventsByDate[day], newEntry(e, userID))
		}
		grid = append(grid, row)
	}

	stats := Statistics{
		TotalEvents:  len(events),
		EventsByType: map[event.Type]int{},
	}
	for _, e := range events {
		stats.EventsByType[e.EventType]++
		if userRSVP(e.RSVPs, userID) != nil {
			stats.MyRSVPCount++
		}
	}

	result := &MonthGrid{
		Grid:                grid,
		DateAxis:            buildDateAxis(start, end),
		DateRange:           DateRange{Start: start, End: end},
		ActiveSubscriptions: subs,
		Statistics:          stats,
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, cacheKey, result, 5*time.Minute); err != nil {
			s.logger.Error("failed to cache calendar grid", zap.Error(err))
		}
	}

	return result, nil
}

// BuildWeekGrid assembles the Monday-start week containing the anchor date,
// restricted to events the requesting user has RSVP'd to.
func (s *service) BuildWeekGrid(ctx context.Context, anchor time.Time, userID uuid.UUID) (*WeekGrid, error) {
	if anchor.IsZero() {
		anchor = time.Now().UTC()
	}
	monday := startOfWeek(anchor)
	sunday := monday.AddDate(0, 0, 6)
	weekEnd := endOfDay(sunday)

	filter := event.Filter{StartDate: &monday, EndDate: &weekEnd}
	events, err := s.events.FindInRange(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	week := &WeekGrid{
		WeekStart: monday.Format(dateKey),
		WeekEnd:   sunday.Format(dateKey),
	}

	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		bucket := WeekDay{
			Date:    day.Format(dateKey),
			Weekday: day.Weekday().String(),
			Events:  []EventEntry{},
		}
		for _, e := range events {
			if e.StartDate.Format(dateKey) != bucket.Date {
				continue
			}
			if userRSVP(e.RSVPs, userID) == nil {
				continue
			}
			bucket.Events = append(bucket.Events, newEntry(e, userID))
		}
		week.Days = append(week.Days, bucket)
	}

	return week, nil
}

func newEntry(e event.Event, userID uuid.UUID) EventEntry {
	entry := EventEntry{Event: e, RSVPCount: len(e.RSVPs), MyRSVP: userRSVP(e.RSVPs, userID)}
	// Individual responses stay private; only the requester's own overlay
	// and the aggregate count leave this layer.
	entry.Event.RSVPs = nil
	return entry
}

func userRSVP(rsvps []rsvp.RSVP, userID uuid.UUID) *rsvp.RSVP {
	for i := range rsvps {
		if rsvps[i].UserID == userID {
			return &rsvps[i]
		}
	}
	return nil
}

// resolveRange defaults to the first through last day of the current month
func resolveRange(start, end *time.Time) (time.Time, time.Time) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	to = endOfDay(to)

	if start != nil {
		from = startOfDay(*start)
	}
	if end != nil {
		to = endOfDay(*end)
	}
	return from, to
}

// buildDateAxis lists every calendar day in [start, end] inclusive.
// An inverted range produces an empty axis.
func buildDateAxis(start, end time.Time) []string {
	axis := []string{}
	for d := startOfDay(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		axis = append(axis, d.Format(dateKey))
	}
	return axis
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// startOfWeek returns midnight of the Monday of t's week
func startOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6 // Sunday
	}
	return startOfDay(t.AddDate(0, 0, -offset))
}

func (s *service) gridCacheKey(userID uuid.UUID, start, end time.Time, opts GridOptions) string {
	sector := ""
	if opts.Sector != nil {
		sector = *opts.Sector
	}
	eventType := ""
	if opts.EventType != nil {
		eventType = string(*opts.EventType)
	}
	return fmt.Sprintf("calendar:grid:%s:%s:%s:%s:%s:%s",
		userID, start.Format(dateKey), end.Format(dateKey),
		sector, eventType, strings.Join(opts.Tickers, ","))
}
