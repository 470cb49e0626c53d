package ingest

import (
	"context"
	"time"

	"github.com/blockgraph/chaingraph-backend/internal/chain"
	"github.com/blockgraph/chaingraph-backend/internal/graph"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source is the slice of the provider contract the engine consumes.
	Source interface {
		GetHash(ctx context.Context, height int64) (string, error)
		GetBlock(ctx context.Context, hash string) (*chain.Block, error)
		GetTransaction(ctx context.Context, txid string) (*chain.Transaction, error)
	}

	// Store is the write surface of the graph store the engine needs.
	Store interface {
		BlockExists(ctx context.Context, hash string) (bool, error)
		HashAtHeight(ctx context.Context, height int64) (string, bool, error)
		Write(ctx context.Context, fn func(graph.Unit) error) error
	}

	// Metrics observes engine progress; a nil Metrics disables observation.
	Metrics interface {
		ObserveProcessHeight(err error, height int64, started time.Time)
		ObserveProcessBatch(err error, heights int, started time.Time)
	}
)
