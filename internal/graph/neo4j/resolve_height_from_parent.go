package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/blockgraph/chaingraph-backend/internal/model"
)

// ResolveHeightFromParent assigns parent.height+1 when the parent is now
// resolved, or returns nil when the block stays pending.
func (r *Repository) ResolveHeightFromParent(ctx context.Context, hash string) (height *int64, err error) {
	started := time.Now()
	defer func() {
		r.observe("resolve_height_from_parent", err, started)
	}()

	err = r.write(ctx, func(u txUnit) error {
		var err error
		height, err = resolveHeightFromParent(ctx, u.tx, hash)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("resolve height of %s: %w", hash, err)
	}
	return height, nil
}

func resolveHeightFromParent(ctx context.Context, tx neo4j.ManagedTransaction, hash string) (*int64, error) {
	const query = `
MATCH (b:Block {hash: $hash})
OPTIONAL MATCH (p:Block {hash: b.prevhash})
RETURN b.height AS height,
       coalesce(b.stale, false) AS stale,
       b.prevhash AS prevhash,
       p.height AS parent_height,
       coalesce(p.stale, false) AS parent_stale`

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
	prevValue, _ := records[0].Get("prevhash")
	parentHeightValue, _ := records[0].Get("parent_height")
	parentStaleValue, _ := records[0].Get("parent_stale")

	if boolFromValue(staleValue) {
		return nil, nil
	}
	if height := nullableInt64(heightValue); height != nil {
		return height, nil
	}
	if stringFromValue(prevValue) == model.GenesisPrevHash {
		zero := int64(0)
		if err := setHeight(ctx, tx, hash, zero); err != nil {
			return nil, err
		}
		return &zero, nil
	}

	parentHeight := nullableInt64(parentHeightValue)
	if parentHeight == nil || boolFromValue(parentStaleValue) {
		return nil, nil
	}
	next := *parentHeight + 1
	if err := setHeight(ctx, tx, hash, next); err != nil {
		return nil, err
	}
	return &next, nil
}
