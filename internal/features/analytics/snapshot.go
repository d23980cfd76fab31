package analytics

import (
	"context"
	"fmt"
	"sync"

	"wellness-analytics/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SnapshotScheduler computes every metric on a cron schedule. Each run writes
// one audit report per metric through the regular service path.
type SnapshotScheduler struct {
	service  AnalyticsService
	logger   *zap.Logger
	schedule string

	mu        sync.Mutex
	scheduler *cron.Cron
}

func NewSnapshotScheduler(cfg *config.Config, service AnalyticsService, logger *zap.Logger) *SnapshotScheduler {
	return &SnapshotScheduler{
		service:  service,
		logger:   logger,
		schedule: cfg.SnapshotSchedule,
	}
}

func (s *SnapshotScheduler) Start(ctx context.Context) error {
	if s.schedule == "" {
		s.logger.Info("snapshot schedule not configured")
		return nil
	}
	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid SNAPSHOT_SCHEDULE %q: %w", s.schedule, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(s.schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("failed to register snapshot job: %w", err)
	}
	s.scheduler.Start()
	s.logger.Info("snapshot scheduler started", zap.String("schedule", s.schedule))
	return nil
}

func (s *SnapshotScheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
		s.scheduler = nil
	}
	return nil
}

// RunOnce computes all metrics and returns how many failed. Failures are
// logged and do not stop the remaining metrics.
func (s *SnapshotScheduler) RunOnce(ctx context.Context) int {
	failed := 0
	for _, def := range Definitions {
		if _, err := s.service.Compute(ctx, def.Key); err != nil {
			failed++
			s.logger.Warn("snapshot metric failed", zap.String("metric", def.Key), zap.Error(err))
		}
	}
	s.logger.Info("snapshot complete", zap.Int("metrics", len(Definitions)), zap.Int("failed", failed))
	return failed
}
