package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// QuotationExpirer is the part of the quotation use case the sweeper runs.
type QuotationExpirer interface {
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)
}

// QuotationSweeper expires overdue quotations on a cron schedule.
type QuotationSweeper struct {
	quotations QuotationExpirer
	schedule   string
	now        func() time.Time
	logger     *zap.Logger
}

func NewQuotationSweeper(quotations QuotationExpirer, schedule string, logger *zap.Logger) *QuotationSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotationSweeper{
		quotations: quotations,
		schedule:   schedule,
		now:        time.Now,
		logger:     logger.Named("worker.sweeper"),
	}
}

// Run schedules the sweep and blocks until ctx is cancelled, then waits for
// a running sweep to finish.
func (s *QuotationSweeper) Run(ctx context.Context) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(s.schedule, func() { s.SweepOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	s.logger.Info("starting quotation sweeper", zap.String("schedule", s.schedule))
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("quotation sweeper stopped")
	return nil
}

// SweepOnce expires every quotation overdue at the current time.
func (s *QuotationSweeper) SweepOnce(ctx context.Context) int {
	now := s.now().UTC()
	n, err := s.quotations.ExpireOverdue(ctx, now)
	if err != nil {
		s.logger.Error("quotation sweep failed", zap.Int("expired", n), zap.Error(err))
		return n
	}
	if n > 0 {
		s.logger.Info("quotations expired", zap.Int("count", n))
	}
	return n
}
