package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MaxContiguousHeight returns the highest height h such that every height in
// [from, h] is present on a canonical block, or found=false when `from`
// itself is missing. The contiguous prefix is the set of sorted distinct
// heights whose value equals from + position.
func (r *Repository) MaxContiguousHeight(ctx context.Context, from int64) (height int64, found bool, err error) {
	started := time.Now()
	defer func() {
		r.observe("max_contiguous_height", err, started)
	}()

	const query = `
MATCH (b:Block)
WHERE b.height IS NOT NULL AND b.height >= $from AND coalesce(b.stale, false) = false
WITH DISTINCT b.height AS height
ORDER BY height
WITH collect(height) AS heights
UNWIND range(0, size(heights) - 1) AS i
WITH heights[i] AS height, i
WHERE height = $from + i
RETURN max(height) AS max_height`

	err = r.readSingle(ctx, query, map[string]any{"from": from}, func(record *neo4j.Record) error {
		value, _ := record.Get("max_height")
		if h := nullableInt64(value); h != nil {
			height = *h
			found = true
		}
		return nil
	})
	if err != nil {
		return 0, false, fmt.Errorf("max contiguous height from %d: %w", from, err)
	}
	return height, found, nil
}
