// Package memory implements the graph store contract over a hash-keyed
// in-process arena. It carries the exact merge semantics of the persistent
// implementation and backs the unit tests of everything above the store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/blockgraph/chaingraph-backend/internal/graph"
	"github.com/blockgraph/chaingraph-backend/internal/model"
)

type blockNode struct {
	block  model.Block
	height *int64
	stale  bool
}

type txNode struct {
	tx  model.Transaction
	fee *int64
}

type outputNode struct {
	txid  string
	out   model.Output
	spent bool
}

// Store is an in-memory graph store. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	blocks   map[string]*blockNode
	children map[string]map[string]struct{}
	byHeight map[int64]string
	txs      map[string]*txNode
	blockTxs map[string]map[string]int64
	outputs  map[string]*outputNode
	byAddr   map[string]map[string]struct{}
	spends   map[string]string
}

var _ graph.Store = (*Store)(nil)

// New constructs an empty store.
func New() *Store {
	return &Store{
		blocks:   make(map[string]*blockNode),
		children: make(map[string]map[string]struct{}),
		byHeight: make(map[int64]string),
		txs:      make(map[string]*txNode),
		blockTxs: make(map[string]map[string]int64),
		outputs:  make(map[string]*outputNode),
		byAddr:   make(map[string]map[string]struct{}),
		spends:   make(map[string]string),
	}
}

// unit applies writes directly to the locked store; Write handles rollback.
type unit struct {
	s *Store
}

// Write runs fn against a scoped unit. On error the store is restored to its
// state before the unit started.
func (s *Store) Write(ctx context.Context, fn func(graph.Unit) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(unit{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// UpsertBlock merges a block header in its own unit.
func (s *Store) UpsertBlock(ctx context.Context, block model.Block) (graph.BlockUpsert, error) {
	var res graph.BlockUpsert
	err := s.Write(ctx, func(u graph.Unit) error {
		var err error
		res, err = u.UpsertBlock(ctx, block)
		return err
	})
	return res, err
}

// UpsertTransaction merges a transaction in its own unit.
func (s *Store) UpsertTransaction(ctx context.Context, tx model.Transaction) (*int64, error) {
	var fee *int64
	err := s.Write(ctx, func(u graph.Unit) error {
		var err error
		fee, err = u.UpsertTransaction(ctx, tx)
		return err
	})
	return fee, err
}

// UpsertCoinbaseTransaction merges a coinbase transaction in its own unit.
func (s *Store) UpsertCoinbaseTransaction(ctx context.Context, tx model.Transaction) (*int64, error) {
	var fee *int64
	err := s.Write(ctx, func(u graph.Unit) error {
		var err error
		fee, err = u.UpsertCoinbaseTransaction(ctx, tx)
		return err
	})
	return fee, err
}

func (u unit) UpsertBlock(ctx context.Context, block model.Block) (graph.BlockUpsert, error) {
	if err := ctx.Err(); err != nil {
		return graph.BlockUpsert{}, err
	}
	if block.Hash == "" {
		return graph.BlockUpsert{}, fmt.Errorf("block hash is required")
	}
	s := u.s

	n, ok := s.blocks[block.Hash]
	if !ok {
		n = &blockNode{}
		s.blocks[block.Hash] = n
	}
	n.block = block
	// Re-observing a block revives it from an abandoned branch.
	n.stale = false

	if block.PrevHash != "" {
		set, ok := s.children[block.PrevHash]
		if !ok {
			set = make(map[string]struct{})
			s.children[block.PrevHash] = set
		}
		set[block.Hash] = struct{}{}
	}

	switch {
	case block.IsGenesis():
		s.setHeight(block.Hash, 0)
	case n.height == nil:
		if p, ok := s.blocks[block.PrevHash]; ok && p.height != nil && !p.stale {
			s.setHeight(block.Hash, *p.height+1)
		}
	}

	return graph.BlockUpsert{Height: copyHeight(n.height), PrevHash: block.PrevHash}, nil
}

func (u unit) UpsertTransaction(ctx context.Context, tx model.Transaction) (*int64, error) {
	return u.upsertTransaction(ctx, tx, false)
}

func (u unit) UpsertCoinbaseTransaction(ctx context.Context, tx model.Transaction) (*int64, error) {
	return u.upsertTransaction(ctx, tx, true)
}

func (u unit) upsertTransaction(ctx context.Context, tx model.Transaction, coinbase bool) (*int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if tx.TxID == "" {
		return nil, fmt.Errorf("txid is required")
	}
	s := u.s

	t, ok := s.txs[tx.TxID]
	if !ok {
		t = &txNode{}
		s.txs[tx.TxID] = t
	}
	t.tx = tx

	if tx.BlockHash != "" {
		inc, ok := s.blockTxs[tx.BlockHash]
		if !ok {
			inc = make(map[string]int64)
			s.blockTxs[tx.BlockHash] = inc
		}
		inc[tx.TxID] = tx.Index
	}

	var outTotal int64
	for _, out := range tx.Outputs {
		id := model.OutputID(tx.TxID, out.Index)
		on, ok := s.outputs[id]
		if !ok {
			on = &outputNode{txid: tx.TxID}
			s.outputs[id] = on
		}
		on.out = out
		if _, spent := s.spends[id]; spent {
			on.spent = true
		}
		if out.Address != "" {
			locked, ok := s.byAddr[out.Address]
			if !ok {
				locked = make(map[string]struct{})
				s.byAddr[out.Address] = locked
			}
			locked[id] = struct{}{}
		}
		outTotal += out.Value
	}

	if coinbase {
		fee := int64(0)
		t.fee = &fee
		return copyHeight(t.fee), nil
	}

	resolved := true
	var inTotal int64
	for _, in := range tx.Inputs {
		id := model.OutputID(in.PrevTxID, in.PrevVout)
		prev, ok := s.outputs[id]
		if !ok {
			resolved = false
			continue
		}
		s.spends[id] = tx.TxID
		prev.spent = true
		inTotal += prev.out.Value
	}

	// Fee is deferred until every referenced input is present; a later
	// re-upsert completes it.
	if resolved {
		fee := inTotal - outTotal
		t.fee = &fee
	}
	return copyHeight(t.fee), nil
}

// BlockExists reports whether a block with the hash has been stored.
func (s *Store) BlockExists(ctx context.Context, hash string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blocks[hash]
	return ok, nil
}

// HashAtHeight returns the canonical hash stored at the height.
func (s *Store) HashAtHeight(ctx context.Context, height int64) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.byHeight[height]
	return hash, ok, nil
}

// OrphanBlocks lists non-stale blocks whose height is still pending.
func (s *Store) OrphanBlocks(ctx context.Context) ([]graph.OrphanBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orphans := make([]graph.OrphanBlock, 0)
	for hash, n := range s.blocks {
		if n.height == nil && !n.stale {
			orphans = append(orphans, graph.OrphanBlock{Hash: hash, PrevHash: n.block.PrevHash})
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].Hash < orphans[j].Hash })
	return orphans, nil
}

// ResolveHeightFromParent assigns parent.height+1 when the parent is now
// resolved, or returns nil when the block stays pending.
func (s *Store) ResolveHeightFromParent(ctx context.Context, hash string) (*int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.blocks[hash]
	if !ok || n.stale {
		return nil, nil
	}
	if n.height != nil {
		return copyHeight(n.height), nil
	}
	if n.block.IsGenesis() {
		s.setHeight(hash, 0)
		return copyHeight(n.height), nil
	}
	p, ok := s.blocks[n.block.PrevHash]
	if !ok || p.height == nil || p.stale {
		return nil, nil
	}
	s.setHeight(hash, *p.height+1)
	return copyHeight(n.height), nil
}

// PropagateHeights cascades the block's height along chain edges to every
// descendant that can be advanced, returning the advanced hashes.
func (s *Store) PropagateHeights(ctx context.Context, hash string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.blocks[hash]
	if !ok || n.height == nil || n.stale {
		return nil, nil
	}

	advanced := make([]string, 0)
	queue := []string{hash}
	steps := 0
	for len(queue) > 0 {
		steps++
		if steps > graph.MaxPropagateDepth {
			return nil, fmt.Errorf("height propagation from %s exceeded depth %d", hash, graph.MaxPropagateDepth)
		}
		cur := queue[0]
		queue = queue[1:]
		curHeight := *s.blocks[cur].height

		for _, child := range s.sortedChildren(cur) {
			cn := s.blocks[child]
			if cn == nil || cn.stale {
				continue
			}
			if cn.height != nil && *cn.height == curHeight+1 {
				continue
			}
			s.setHeight(child, curHeight+1)
			advanced = append(advanced, child)
			queue = append(queue, child)
		}
	}
	return advanced, nil
}

// MaxContiguousHeight walks the height index upward from `from` until the
// first gap.
func (s *Store) MaxContiguousHeight(ctx context.Context, from int64) (int64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byHeight[from]; !ok {
		return 0, false, nil
	}
	h := from
	for {
		if _, ok := s.byHeight[h+1]; !ok {
			return h, true, nil
		}
		h++
	}
}

// TransactionFee exposes the stored fee for assertions and queries; the
// second return reports whether the transaction exists.
func (s *Store) TransactionFee(txid string) (*int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txs[txid]
	if !ok {
		return nil, false
	}
	return copyHeight(t.fee), true
}

// OutputSpent reports the spent flag of an output, if present.
func (s *Store) OutputSpent(txid string, index int64) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	on, ok := s.outputs[model.OutputID(txid, index)]
	if !ok {
		return false, false
	}
	return on.spent, true
}

// BlockHeight reports the stored height of a block, if present.
func (s *Store) BlockHeight(hash string) (*int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.blocks[hash]
	if !ok {
		return nil, false
	}
	return copyHeight(n.height), true
}

// BlockStale reports whether a block is parked on an abandoned branch.
func (s *Store) BlockStale(hash string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.blocks[hash]
	if !ok {
		return false, false
	}
	return n.stale, true
}

// setHeight assigns a height, displacing any different block previously
// stored at that height onto the stale set. Callers hold the lock.
func (s *Store) setHeight(hash string, height int64) {
	n := s.blocks[hash]
	if n.height != nil && *n.height == height {
		s.byHeight[height] = hash
		return
	}

	if prev, ok := s.byHeight[height]; ok && prev != hash {
		if pn := s.blocks[prev]; pn != nil {
			pn.height = nil
			pn.stale = true
		}
	}
	if n.height != nil {
		if cur, ok := s.byHeight[*n.height]; ok && cur == hash {
			delete(s.byHeight, *n.height)
		}
	}

	h := height
	n.height = &h
	n.stale = false
	s.byHeight[height] = hash
}

func (s *Store) sortedChildren(hash string) []string {
	set := s.children[hash]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for child := range set {
		out = append(out, child)
	}
	sort.Strings(out)
	return out
}

func copyHeight(h *int64) *int64 {
	if h == nil {
		return nil
	}
	v := *h
	return &v
}
