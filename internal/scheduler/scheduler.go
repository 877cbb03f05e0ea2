package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/presstab/coinboard/internal/feed"
)

// Scheduler runs the periodic feed refresh.
type Scheduler struct {
	cron      *cron.Cron
	collector *feed.Collector
	ctx       context.Context
	log       *zap.Logger
}

// New creates a scheduler; cron expressions include a seconds field.
func New(ctx context.Context, col *feed.Collector, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		collector: col,
		ctx:       ctx,
		log:       log,
	}
}

// Register adds the refresh job under the given cron spec.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.cron.AddFunc(refreshCron, s.refresh); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}
	return nil
}

func (s *Scheduler) refresh() {
	if err := s.collector.Collect(s.ctx); err != nil {
		s.log.Error("scheduled refresh failed", zap.Error(err))
	}
}

// RefreshNow runs one collect immediately, outside the cron cadence.
func (s *Scheduler) RefreshNow() {
	s.refresh()
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("scheduler stopped")
}
