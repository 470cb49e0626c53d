// Package neo4j implements the graph store contract on Neo4j. Blocks,
// transactions, outputs and addresses are nodes; chain, inc, out, in and
// locked relationships carry the topology. Every write is a Cypher MERGE so
// replays and out-of-order ingestion converge.
package neo4j

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/blockgraph/chaingraph-backend/internal/graph"
	"github.com/blockgraph/chaingraph-backend/internal/model"
)

type (
	// Metrics records metrics for repository operations; nil disables
	// observation.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Repository is a Neo4j-backed graph store.
type Repository struct {
	driver   neo4j.DriverWithContext
	database string
	metrics  Metrics
}

var _ graph.Store = (*Repository)(nil)

// NewRepository connects to Neo4j and verifies connectivity.
func NewRepository(ctx context.Context, uri, username, password, database string, metrics Metrics) (*Repository, error) {
	if uri == "" {
		return nil, errors.New("neo4j uri is required")
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	return &Repository{
		driver:   driver,
		database: database,
		metrics:  metrics,
	}, nil
}

// Close releases the underlying driver.
func (r *Repository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

// txUnit is the scoped write surface bound to one managed transaction.
type txUnit struct {
	tx neo4j.ManagedTransaction
}

// Write runs fn inside one managed write transaction. Any error from fn
// rolls the whole unit back.
func (r *Repository) Write(ctx context.Context, fn func(graph.Unit) error) (err error) {
	started := time.Now()
	defer func() {
		r.observe("write", err, started)
	}()

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: r.database,
	})
	defer func() {
		if closeErr := session.Close(ctx); closeErr != nil && err == nil {
			err = fmt.Errorf("close session: %w", closeErr)
		}
	}()

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(txUnit{tx: tx})
	})
	return err
}

// UpsertBlock merges a block header in its own unit.
func (r *Repository) UpsertBlock(ctx context.Context, block model.Block) (res graph.BlockUpsert, err error) {
	started := time.Now()
	defer func() {
		r.observe("upsert_block", err, started)
	}()

	err = r.write(ctx, func(u txUnit) error {
		var err error
		res, err = u.UpsertBlock(ctx, block)
		return err
	})
	return res, err
}

// UpsertTransaction merges a transaction in its own unit.
func (r *Repository) UpsertTransaction(ctx context.Context, tx model.Transaction) (fee *int64, err error) {
	started := time.Now()
	defer func() {
		r.observe("upsert_transaction", err, started)
	}()

	err = r.write(ctx, func(u txUnit) error {
		var err error
		fee, err = u.UpsertTransaction(ctx, tx)
		return err
	})
	return fee, err
}

// UpsertCoinbaseTransaction merges a coinbase transaction in its own unit.
func (r *Repository) UpsertCoinbaseTransaction(ctx context.Context, tx model.Transaction) (fee *int64, err error) {
	started := time.Now()
	defer func() {
		r.observe("upsert_coinbase_transaction", err, started)
	}()

	err = r.write(ctx, func(u txUnit) error {
		var err error
		fee, err = u.UpsertCoinbaseTransaction(ctx, tx)
		return err
	})
	return fee, err
}

// write runs fn in one managed write transaction without the outer Write
// metrics envelope.
func (r *Repository) write(ctx context.Context, fn func(u txUnit) error) (err error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: r.database,
	})
	defer func() {
		if closeErr := session.Close(ctx); closeErr != nil && err == nil {
			err = fmt.Errorf("close session: %w", closeErr)
		}
	}()

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(txUnit{tx: tx})
	})
	return err
}

// readSingle runs a read query and hands the single record, if any, to scan.
func (r *Repository) readSingle(ctx context.Context, cypher string, params map[string]any, scan func(record *neo4j.Record) error) (err error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: r.database,
	})
	defer func() {
		if closeErr := session.Close(ctx); closeErr != nil && err == nil {
			err = fmt.Errorf("close session: %w", closeErr)
		}
	}()

	_, err = session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		if !result.Next(ctx) {
			return nil, result.Err()
		}
		return nil, scan(result.Record())
	})
	return err
}

func (r *Repository) observe(operation string, err error, started time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.Observe(operation, err, started)
}

func nullableInt64(v any) *int64 {
	if v == nil {
		return nil
	}
	if h, ok := v.(int64); ok {
		return &h
	}
	return nil
}

func stringFromValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func boolFromValue(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}
