package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/blockgraph/chaingraph-backend/internal/graph"
)

// OrphanBlocks lists non-stale blocks whose height is still pending.
func (r *Repository) OrphanBlocks(ctx context.Context) (orphans []graph.OrphanBlock, err error) {
	started := time.Now()
	defer func() {
		r.observe("orphan_blocks", err, started)
	}()

	const query = `
MATCH (b:Block)
WHERE b.height IS NULL AND coalesce(b.stale, false) = false
RETURN b.hash AS hash, b.prevhash AS prevhash
ORDER BY b.hash`

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: r.database,
	})
	defer func() {
		if closeErr := session.Close(ctx); closeErr != nil && err == nil {
			err = fmt.Errorf("close session: %w", closeErr)
		}
	}()

	records, err := neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) ([]*neo4j.Record, error) {
		result, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list orphan blocks: %w", err)
	}

	orphans = make([]graph.OrphanBlock, 0, len(records))
	for _, record := range records {
		hashValue, _ := record.Get("hash")
		prevValue, _ := record.Get("prevhash")
		orphans = append(orphans, graph.OrphanBlock{
			Hash:     stringFromValue(hashValue),
			PrevHash: stringFromValue(prevValue),
		})
	}
	return orphans, nil
}
