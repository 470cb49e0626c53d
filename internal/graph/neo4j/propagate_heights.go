package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/blockgraph/chaingraph-backend/internal/graph"
)

// PropagateHeights cascades the block's height along chain edges to every
// descendant that can be advanced, returning the advanced hashes. The whole
// walk runs in one write transaction.
func (r *Repository) PropagateHeights(ctx context.Context, hash string) (advanced []string, err error) {
	started := time.Now()
	defer func() {
		r.observe("propagate_heights", err, started)
	}()

	err = r.write(ctx, func(u txUnit) error {
		var err error
		advanced, err = propagateHeights(ctx, u.tx, hash)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("propagate heights from %s: %w", hash, err)
	}
	return advanced, nil
}

type childRow struct {
	hash   string
	height *int64
	stale  bool
}

func propagateHeights(ctx context.Context, tx neo4j.ManagedTransaction, hash string) ([]string, error) {
	start, err := blockHeight(ctx, tx, hash)
	if err != nil {
		return nil, err
	}
	if start == nil {
		return nil, nil
	}

	type queued struct {
		hash   string
		height int64
	}

	advanced := make([]string, 0)
	queue := []queued{{hash: hash, height: *start}}
	steps := 0
	for len(queue) > 0 {
		steps++
		if steps > graph.MaxPropagateDepth {
			return nil, fmt.Errorf("height propagation from %s exceeded depth %d", hash, graph.MaxPropagateDepth)
		}
		cur := queue[0]
		queue = queue[1:]

		children, err := blockChildren(ctx, tx, cur.hash)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if child.stale {
				continue
			}
			next := cur.height + 1
			if child.height != nil && *child.height == next {
				continue
			}
			if err := setHeight(ctx, tx, child.hash, next); err != nil {
				return nil, err
			}
			advanced = append(advanced, child.hash)
			queue = append(queue, queued{hash: child.hash, height: next})
		}
	}
	return advanced, nil
}

// blockHeight returns the block's height, or nil when the block is missing,
// pending or stale.
func blockHeight(ctx context.Context, tx neo4j.ManagedTransaction, hash string) (*int64, error) {
	const query = `
MATCH (b:Block {hash: $hash})
RETURN b.height AS height, coalesce(b.stale, false) AS stale`

	result, err := tx.Run(ctx, query, map[string]any{"hash": hash})
	if err != nil {
		return nil, err
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	heightValue, _ := records[0].Get("height")
	staleValue, _ := records[0].Get("stale")
	if boolFromValue(staleValue) {
		return nil, nil
	}
	return nullableInt64(heightValue), nil
}

func blockChildren(ctx context.Context, tx neo4j.ManagedTransaction, hash string) ([]childRow, error) {
	const query = `
MATCH (:Block {hash: $hash})-[:chain]->(c:Block)
RETURN c.hash AS hash, c.height AS height, coalesce(c.stale, false) AS stale
ORDER BY c.hash`

	result, err := tx.Run(ctx, query, map[string]any{"hash": hash})
	if err != nil {
		return nil, err
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}

	children := make([]childRow, 0, len(records))
	for _, record := range records {
		hashValue, _ := record.Get("hash")
		heightValue, _ := record.Get("height")
		staleValue, _ := record.Get("stale")
		children = append(children, childRow{
			hash:   stringFromValue(hashValue),
			height: nullableInt64(heightValue),
			stale:  boolFromValue(staleValue),
		})
	}
	return children, nil
}
