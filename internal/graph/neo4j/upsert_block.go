package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/blockgraph/chaingraph-backend/internal/graph"
	"github.com/blockgraph/chaingraph-backend/internal/model"
)

// UpsertBlock merges the block header, links chain edges to an already
// present parent and to already present children, and assigns the height
// when it is derivable.
func (u txUnit) UpsertBlock(ctx context.Context, block model.Block) (graph.BlockUpsert, error) {
	if block.Hash == "" {
		return graph.BlockUpsert{}, fmt.Errorf("block hash is required")
	}

	const query = `
MERGE (b:Block {hash: $hash})
SET b.prevhash = $prevhash,
    b.size = $size,
    b.tx_count = $tx_count,
    b.version = $version,
    b.merkleroot = $merkleroot,
    b.time = $time,
    b.bits = $bits,
    b.nonce = $nonce,
    b.stale = false
WITH b
OPTIONAL MATCH (p:Block {hash: $prevhash})
FOREACH (x IN CASE WHEN p IS NULL THEN [] ELSE [p] END |
    MERGE (x)-[:chain]->(b))
WITH b, p
OPTIONAL MATCH (c:Block {prevhash: $hash})
FOREACH (y IN CASE WHEN c IS NULL THEN [] ELSE [c] END |
    MERGE (b)-[:chain]->(y))
RETURN b.height AS height,
       p.height AS parent_height,
       coalesce(p.stale, false) AS parent_stale`

	result, err := u.tx.Run(ctx, query, map[string]any{
		"hash":       block.Hash,
		"prevhash":   block.PrevHash,
		"size":       block.Size,
		"tx_count":   block.TxCount,
		"version":    block.Version,
		"merkleroot": block.MerkleRoot,
		"time":       block.Time,
		"bits":       block.Bits,
		"nonce":      block.Nonce,
	})
	if err != nil {
		return graph.BlockUpsert{}, fmt.Errorf("merge block %s: %w", block.Hash, err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return graph.BlockUpsert{}, fmt.Errorf("collect block merge %s: %w", block.Hash, err)
	}
	if len(records) == 0 {
		return graph.BlockUpsert{}, fmt.Errorf("merge block %s returned no rows", block.Hash)
	}

	heightValue, _ := records[0].Get("height")
	parentHeightValue, _ := records[0].Get("parent_height")
	parentStaleValue, _ := records[0].Get("parent_stale")

	current := nullableInt64(heightValue)
	parentHeight := nullableInt64(parentHeightValue)
	parentStale := boolFromValue(parentStaleValue)

	var desired *int64
	switch {
	case block.IsGenesis():
		zero := int64(0)
		desired = &zero
	case current == nil && parentHeight != nil && !parentStale:
		next := *parentHeight + 1
		desired = &next
	}

	if desired != nil && (current == nil || *current != *desired) {
		if err := setHeight(ctx, u.tx, block.Hash, *desired); err != nil {
			return graph.BlockUpsert{}, err
		}
		current = desired
	}

	return graph.BlockUpsert{Height: current, PrevHash: block.PrevHash}, nil
}

// setHeight assigns a height to the block, displacing any other block that
// held it onto the stale set.
func setHeight(ctx context.Context, tx neo4j.ManagedTransaction, hash string, height int64) error {
	const query = `
MATCH (b:Block {hash: $hash})
OPTIONAL MATCH (o:Block)
WHERE o.height = $height AND o.hash <> $hash
FOREACH (x IN CASE WHEN o IS NULL THEN [] ELSE [o] END |
    SET x.height = NULL, x.stale = true)
WITH DISTINCT b
SET b.height = $height, b.stale = false`

	result, err := tx.Run(ctx, query, map[string]any{
		"hash":   hash,
		"height": height,
	})
	if err != nil {
		return fmt.Errorf("set height %d on %s: %w", height, hash, err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("consume set height %d on %s: %w", height, hash, err)
	}
	return nil
}
