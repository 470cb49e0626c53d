package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blockgraph/chaingraph-backend/internal/chain"
)

// ReorgService detects chain divergence against the provider, locates the
// fork point and replays the divergent range. Stored blocks key by hash with
// merge semantics, so the replay repoints the height-to-hash mapping while
// the abandoned branch stays archived.
type ReorgService struct {
	store    Store
	source   Source
	ingester Ingester
	resolver Resolver
	metrics  ReorgMetrics
	logger   *zap.Logger
}

// NewReorgService builds the reorg detector/resolver.
func NewReorgService(
	store Store,
	source Source,
	ingester Ingester,
	resolver Resolver,
	metrics ReorgMetrics,
	logger *zap.Logger,
) *ReorgService {
	return &ReorgService{
		store:    store,
		source:   source,
		ingester: ingester,
		resolver: resolver,
		metrics:  metrics,
		logger:   logger,
	}
}

// Check compares the stored and canonical hashes at the height. A missing
// local entry or matching hashes is a no-op. On divergence it walks backward
// until store and provider agree, re-ingests everything above the fork point
// and resolves the replayed heights. Failing to find agreement down to
// genesis is a ConsistencyError: wrong network or corrupted store, operator
// action required.
func (s *ReorgService) Check(ctx context.Context, height int64) (result *ReorgResult, err error) {
	started := time.Now()
	defer func() {
		s.observe(err, result != nil, started)
	}()

	stored, ok, err := s.store.HashAtHeight(ctx, height)
	if err != nil {
		return nil, fmt.Errorf("stored hash at height %d: %w", height, err)
	}
	if !ok {
		return nil, nil
	}

	canonical, err := s.source.GetHash(ctx, height)
	if err != nil {
		return nil, fmt.Errorf("canonical hash at height %d: %w", height, err)
	}
	if stored == canonical {
		return nil, nil
	}

	s.logger.Warn("chain divergence detected",
		zap.Int64("height", height),
		zap.String("stored", stored),
		zap.String("canonical", canonical))

	forkPoint, err := s.findForkPoint(ctx, height)
	if err != nil {
		return nil, err
	}

	s.logger.Info("fork point located",
		zap.Int64("fork_point", forkPoint),
		zap.Int64("height", height))

	if err := s.ingester.IngestRange(ctx, forkPoint+1, height); err != nil {
		return nil, fmt.Errorf("re-ingest heights %d-%d: %w", forkPoint+1, height, err)
	}
	if _, err := s.resolver.Resolve(ctx); err != nil {
		return nil, fmt.Errorf("resolve after re-ingest: %w", err)
	}

	return &ReorgResult{
		ForkPoint:  forkPoint,
		Reingested: height - forkPoint,
	}, nil
}

// findForkPoint walks h-1, h-2, ... comparing stored vs canonical hashes
// until they agree. Heights the store never resolved are skipped; reaching
// below zero without agreement is fatal.
func (s *ReorgService) findForkPoint(ctx context.Context, from int64) (int64, error) {
	for h := from - 1; h >= 0; h-- {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		stored, ok, err := s.store.HashAtHeight(ctx, h)
		if err != nil {
			return 0, fmt.Errorf("stored hash at height %d: %w", h, err)
		}
		if !ok {
			continue
		}
		canonical, err := s.source.GetHash(ctx, h)
		if err != nil {
			return 0, fmt.Errorf("canonical hash at height %d: %w", h, err)
		}
		if stored == canonical {
			return h, nil
		}
	}
	return 0, &chain.ConsistencyError{Height: from}
}

func (s *ReorgService) observe(err error, reorged bool, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveCheck(err, reorged, started)
}
