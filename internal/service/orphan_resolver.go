package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// OrphanResolver reattaches blocks whose parent was unknown at ingest time.
type OrphanResolver struct {
	store   Store
	metrics ResolverMetrics
	logger  *zap.Logger
}

// NewOrphanResolver builds the resolver.
func NewOrphanResolver(store Store, metrics ResolverMetrics, logger *zap.Logger) *OrphanResolver {
	return &OrphanResolver{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Resolve walks the orphan set once: every block whose parent now carries a
// height gets parent.height+1, and the assignment cascades transitively to
// blocks chained onto it. Returns the number of blocks advanced. A call with
// nothing newly resolvable is a no-op.
func (r *OrphanResolver) Resolve(ctx context.Context) (resolved int, err error) {
	started := time.Now()
	defer func() {
		r.observe(err, resolved, started)
	}()

	orphans, err := r.store.OrphanBlocks(ctx)
	if err != nil {
		return 0, fmt.Errorf("list orphan blocks: %w", err)
	}
	if len(orphans) == 0 {
		return 0, nil
	}

	advanced := make(map[string]struct{}, len(orphans))
	for _, orphan := range orphans {
		if _, done := advanced[orphan.Hash]; done {
			continue
		}
		height, err := r.store.ResolveHeightFromParent(ctx, orphan.Hash)
		if err != nil {
			return len(advanced), fmt.Errorf("resolve height for %s: %w", orphan.Hash, err)
		}
		if height == nil {
			continue
		}
		advanced[orphan.Hash] = struct{}{}

		descendants, err := r.store.PropagateHeights(ctx, orphan.Hash)
		if err != nil {
			return len(advanced), fmt.Errorf("propagate heights from %s: %w", orphan.Hash, err)
		}
		for _, hash := range descendants {
			advanced[hash] = struct{}{}
		}

		r.logger.Info("resolved orphan chain",
			zap.String("hash", orphan.Hash),
			zap.Int64("height", *height),
			zap.Int("descendants", len(descendants)))
	}

	return len(advanced), nil
}

func (r *OrphanResolver) observe(err error, resolved int, started time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.ObserveResolve(err, resolved, started)
}
