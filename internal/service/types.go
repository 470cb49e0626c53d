// Package service contains the orchestration layer: orphan resolution,
// reorg detection/recovery and the continuous sync scheduler.
package service

import (
	"context"
	"time"

	"github.com/blockgraph/chaingraph-backend/internal/graph"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store is the read/resolve surface of the graph store the services use.
	Store interface {
		HashAtHeight(ctx context.Context, height int64) (string, bool, error)
		MaxContiguousHeight(ctx context.Context, from int64) (int64, bool, error)
		OrphanBlocks(ctx context.Context) ([]graph.OrphanBlock, error)
		ResolveHeightFromParent(ctx context.Context, hash string) (*int64, error)
		PropagateHeights(ctx context.Context, hash string) ([]string, error)
	}

	// Source is the slice of the provider contract the services consume.
	Source interface {
		GetTip(ctx context.Context) (int64, error)
		GetHash(ctx context.Context, height int64) (string, error)
	}

	// Ingester drives range ingestion.
	Ingester interface {
		IngestRange(ctx context.Context, start, end int64) error
	}

	// Resolver reattaches orphan blocks.
	Resolver interface {
		Resolve(ctx context.Context) (int, error)
	}

	// ReorgChecker detects and recovers from chain divergence at a height.
	ReorgChecker interface {
		Check(ctx context.Context, height int64) (*ReorgResult, error)
	}

	// SchedulerMetrics observes sync ticks; nil disables observation.
	SchedulerMetrics interface {
		ObserveTick(err error, started time.Time)
	}

	// ResolverMetrics observes orphan resolution runs; nil disables observation.
	ResolverMetrics interface {
		ObserveResolve(err error, resolved int, started time.Time)
	}

	// ReorgMetrics observes reorg checks; nil disables observation.
	ReorgMetrics interface {
		ObserveCheck(err error, reorged bool, started time.Time)
	}
)

// ReorgResult describes a recovered reorganization. A nil result means no
// divergence was found (or the store had nothing at the checked height).
type ReorgResult struct {
	// ForkPoint is the highest height where store and provider agree.
	ForkPoint int64
	// Reingested is the number of heights replayed from the provider.
	Reingested int64
}
