package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BenAji/agora/internal/domain/subscription"
	"github.com/BenAji/agora/pkg/logger"
)

// Scheduler periodically expires subscriptions whose end date has passed
type Scheduler struct {
	subscriptions subscription.Service
	logger        *logger.Logger
	stop          chan struct{}
}

func NewScheduler(subscriptions subscription.Service, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		subscriptions: subscriptions,
		logger:        logger,
		stop:          make(chan struct{}),
	}
}

// Start runs an expiry sweep immediately, then hourly
func (s *Scheduler) Start() {
	s.runExpirySweep()

	s.logger.Info("Subscription expiry scheduler started",
		zap.Duration("interval", time.Hour),
	)

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runExpirySweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep loop
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) runExpirySweep() {
	ctx := context.Background()
	startTime := time.Now()

	expired, err := s.subscriptions.ExpireDue(ctx)
	if err != nil {
		s.logger.Error("Failed to expire due subscriptions", zap.Error(err))
		return
	}

	if expired > 0 {
		s.logger.Info("Expired due subscriptions",
			zap.Int64("count", expired),
			zap.Duration("duration", time.Since(startTime)),
		)
	}
}
