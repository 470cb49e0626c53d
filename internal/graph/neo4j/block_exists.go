package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// BlockExists reports whether a block with the hash has been stored.
func (r *Repository) BlockExists(ctx context.Context, hash string) (exists bool, err error) {
	started := time.Now()
	defer func() {
		r.observe("block_exists", err, started)
	}()

	const query = `MATCH (b:Block {hash: $hash}) RETURN count(b) > 0 AS found`

	err = r.readSingle(ctx, query, map[string]any{"hash": hash}, func(record *neo4j.Record) error {
		value, _ := record.Get("found")
		exists = boolFromValue(value)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("check block %s: %w", hash, err)
	}
	return exists, nil
}
