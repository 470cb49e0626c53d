package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// HashAtHeight returns the canonical (non-stale) hash stored at the height.
func (r *Repository) HashAtHeight(ctx context.Context, height int64) (hash string, found bool, err error) {
	started := time.Now()
	defer func() {
		r.observe("hash_at_height", err, started)
	}()

	const query = `
MATCH (b:Block {height: $height})
WHERE coalesce(b.stale, false) = false
RETURN b.hash AS hash
LIMIT 1`

	err = r.readSingle(ctx, query, map[string]any{"height": height}, func(record *neo4j.Record) error {
		value, _ := record.Get("hash")
		hash = stringFromValue(value)
		found = hash != ""
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("hash at height %d: %w", height, err)
	}
	return hash, found, nil
}
