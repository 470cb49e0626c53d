// Package graph defines the contract of the graph-shaped persistent store.
//
// The store models blocks, transactions, outputs and addresses as nodes with
// labeled edges (chain, inc, out, in, locked). Every write is a merge:
// create-if-absent, update-if-present. Repeated or out-of-order application
// of the same records converges to the same state, which is what makes
// concurrent ingestion, retries and reorg replays safe without locking.
package graph

import (
	"context"

	"github.com/blockgraph/chaingraph-backend/internal/model"
)

// MaxPropagateDepth bounds the iterative descendant walk so a cyclic or
// pathological parent chain cannot spin forever.
const MaxPropagateDepth = 1_000_000

// BlockUpsert is the outcome of merging a block header.
type BlockUpsert struct {
	// Height is nil while the block is pending (parent unknown or
	// unresolved).
	Height   *int64
	PrevHash string
}

// OrphanBlock identifies a stored block whose height is still pending.
type OrphanBlock struct {
	Hash     string
	PrevHash string
}

// Unit is the scoped write surface. All upserts issued through one Unit are
// applied atomically: either the whole unit commits or none of it does, and
// the caller retries the entire unit rather than patching partial state.
type Unit interface {
	// UpsertBlock merges a block header. If the parent is present with a
	// resolved height the block's height is assigned immediately; the
	// genesis sentinel prevhash forces height 0.
	UpsertBlock(ctx context.Context, block model.Block) (BlockUpsert, error)

	// UpsertTransaction merges a transaction, its ordered inc edge, its
	// outputs (with locked edges to addresses) and its in edges to every
	// referenced output present in the store, marking those outputs spent.
	// The returned fee is nil until all referenced inputs are resolved.
	UpsertTransaction(ctx context.Context, tx model.Transaction) (*int64, error)

	// UpsertCoinbaseTransaction merges a coinbase transaction. It has no in
	// edges and its fee is always zero.
	UpsertCoinbaseTransaction(ctx context.Context, tx model.Transaction) (*int64, error)
}

// Store is the full store contract. Single upserts outside Write run in
// their own implicit unit.
type Store interface {
	Unit

	// Write runs fn against a scoped unit with guaranteed rollback on any
	// error or panic exit.
	Write(ctx context.Context, fn func(Unit) error) error

	BlockExists(ctx context.Context, hash string) (bool, error)

	// HashAtHeight returns the canonical (non-stale) hash stored at the
	// height, if any.
	HashAtHeight(ctx context.Context, height int64) (string, bool, error)

	// OrphanBlocks lists blocks with pending heights, excluding blocks
	// parked on an abandoned fork branch.
	OrphanBlocks(ctx context.Context) ([]OrphanBlock, error)

	// ResolveHeightFromParent assigns parent.height+1 to the block if its
	// parent now carries a height, returning the (possibly pre-existing)
	// height or nil when the block is still unresolvable.
	ResolveHeightFromParent(ctx context.Context, hash string) (*int64, error)

	// PropagateHeights cascades the block's height to its descendants along
	// chain edges until no further block can be advanced, returning the
	// hashes that were advanced.
	PropagateHeights(ctx context.Context, hash string) ([]string, error)

	// MaxContiguousHeight returns the highest height h such that every
	// height in [from, h] is present, or found=false when `from` itself is
	// missing.
	MaxContiguousHeight(ctx context.Context, from int64) (int64, bool, error)
}
