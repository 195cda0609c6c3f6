package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"venue_backoffice/internal/usecase/interfaces"
)

// RelayMetrics is notified of every delivery attempt.
type RelayMetrics interface {
	Published(msgType string)
	Failed(msgType string)
}

type RelayConfig struct {
	Interval  time.Duration
	BatchSize int
}

// OutboxRelay delivers messages enqueued by transitions. A message is marked
// dispatched only after Publish succeeded, so a crash between both steps
// delivers it again on the next poll.
type OutboxRelay struct {
	outbox    interfaces.IOutboxRepository
	publisher interfaces.IPublisher
	metrics   RelayMetrics
	config    RelayConfig
	now       func() time.Time
	logger    *zap.Logger
}

func NewOutboxRelay(outbox interfaces.IOutboxRepository, publisher interfaces.IPublisher, metrics RelayMetrics, cfg RelayConfig, logger *zap.Logger) *OutboxRelay {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &OutboxRelay{
		outbox:    outbox,
		publisher: publisher,
		metrics:   metrics,
		config:    cfg,
		now:       time.Now,
		logger:    logger.Named("worker.outbox"),
	}
}

// Run polls until ctx is cancelled.
func (r *OutboxRelay) Run(ctx context.Context) error {
	r.logger.Info("starting outbox relay",
		zap.Duration("interval", r.config.Interval),
		zap.Int("batch_size", r.config.BatchSize))

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	r.RelayOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay shutting down")
			return nil
		case <-ticker.C:
			r.RelayOnce(ctx)
		}
	}
}

// RelayOnce delivers one batch of due messages and returns how many were
// marked dispatched. A failed message stays pending and does not stop the
// batch.
func (r *OutboxRelay) RelayOnce(ctx context.Context) int {
	now := r.now().UTC()
	msgs, err := r.outbox.ListPending(ctx, now, r.config.BatchSize)
	if err != nil {
		r.logger.Error("failed to list pending messages", zap.Error(err))
		return 0
	}

	sent := 0
	for _, msg := range msgs {
		if ctx.Err() != nil {
			break
		}
		if err := r.publisher.Publish(ctx, msg); err != nil {
			r.logger.Warn("publish failed",
				zap.String("message_id", msg.ID),
				zap.String("type", msg.Type),
				zap.Error(err))
			if r.metrics != nil {
				r.metrics.Failed(msg.Type)
			}
			continue
		}
		if err := r.outbox.MarkDispatched(ctx, msg.ID, now); err != nil {
			r.logger.Error("failed to mark message dispatched",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			continue
		}
		if r.metrics != nil {
			r.metrics.Published(msg.Type)
		}
		sent++
	}
	if sent > 0 {
		r.logger.Info("outbox batch relayed", zap.Int("count", sent), zap.Int("pending", len(msgs)))
	}
	return sent
}
