package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blockgraph/chaingraph-backend/internal/chain"
	"github.com/blockgraph/chaingraph-backend/internal/clock"
)

const (
	defaultInterval   = 30 * time.Second
	defaultRetryDelay = 10 * time.Second
)

// SchedulerConfig tunes the continuous sync loop.
type SchedulerConfig struct {
	// StartHeight is where contiguity tracking begins, normally 0.
	StartHeight int64
	// Interval is the pause between successful ticks.
	Interval time.Duration
	// RetryDelay is the pause after a failed tick.
	RetryDelay time.Duration
}

func (c SchedulerConfig) withDefaults() SchedulerConfig {
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	return c
}

// Scheduler runs the sync cycle continuously: catch up to the provider tip,
// resolve orphans, then verify the tip for reorgs. Ticks are serialized; a
// tick never starts while the previous one is in flight.
type Scheduler struct {
	store    Store
	source   Source
	ingester Ingester
	resolver Resolver
	reorg    ReorgChecker
	config   SchedulerConfig
	metrics  SchedulerMetrics
	logger   *zap.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// NewScheduler builds the sync scheduler.
func NewScheduler(
	store Store,
	source Source,
	ingester Ingester,
	resolver Resolver,
	reorg ReorgChecker,
	config SchedulerConfig,
	metrics SchedulerMetrics,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		store:    store,
		source:   source,
		ingester: ingester,
		resolver: resolver,
		reorg:    reorg,
		config:   config.withDefaults(),
		metrics:  metrics,
		logger:   logger,
		sleep:    clock.SleepWithContext,
	}
}

// Run loops until the context is canceled. Transient tick failures are
// logged and retried after RetryDelay; a ConsistencyError is not recoverable
// by retrying and stops the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		err := s.tick(ctx)

		var consistencyErr *chain.ConsistencyError
		switch {
		case errors.As(err, &consistencyErr):
			s.logger.Error("store is inconsistent with the provider chain", zap.Error(err))
			return err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		case err != nil:
			s.logger.Error("sync tick failed", zap.Error(err))
			if sleepErr := s.sleep(ctx, s.config.RetryDelay); sleepErr != nil {
				return nil
			}
			continue
		}

		if err := s.sleep(ctx, s.config.Interval); err != nil {
			return nil
		}
	}
}

// tick performs one sync cycle.
func (s *Scheduler) tick(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		s.observe(err, started)
	}()

	tip, err := s.source.GetTip(ctx)
	if err != nil {
		return fmt.Errorf("get chain tip: %w", err)
	}

	next := s.config.StartHeight
	synced, found, err := s.store.MaxContiguousHeight(ctx, s.config.StartHeight)
	if err != nil {
		return fmt.Errorf("max contiguous height: %w", err)
	}
	if found {
		next = synced + 1
	}

	if next <= tip {
		s.logger.Info("syncing towards tip",
			zap.Int64("from", next),
			zap.Int64("tip", tip))
		if err := s.ingester.IngestRange(ctx, next, tip); err != nil {
			return fmt.Errorf("ingest heights %d-%d: %w", next, tip, err)
		}
	}

	resolved, err := s.resolver.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("resolve orphans: %w", err)
	}
	if resolved > 0 {
		s.logger.Info("orphan blocks resolved", zap.Int("count", resolved))
	}

	result, err := s.reorg.Check(ctx, tip)
	if err != nil {
		return fmt.Errorf("reorg check at height %d: %w", tip, err)
	}
	if result != nil {
		s.logger.Warn("reorganization recovered",
			zap.Int64("fork_point", result.ForkPoint),
			zap.Int64("reingested", result.Reingested))
	}

	return nil
}

func (s *Scheduler) observe(err error, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveTick(err, started)
}
