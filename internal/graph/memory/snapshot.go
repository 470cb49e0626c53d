package memory

// state is a deep copy of the store used to roll back a failed write unit.
type state struct {
	blocks   map[string]*blockNode
	children map[string]map[string]struct{}
	byHeight map[int64]string
	txs      map[string]*txNode
	blockTxs map[string]map[string]int64
	outputs  map[string]*outputNode
	byAddr   map[string]map[string]struct{}
	spends   map[string]string
}

// snapshot copies the full store state. Callers hold the lock.
func (s *Store) snapshot() state {
	snap := state{
		blocks:   make(map[string]*blockNode, len(s.blocks)),
		children: make(map[string]map[string]struct{}, len(s.children)),
		byHeight: make(map[int64]string, len(s.byHeight)),
		txs:      make(map[string]*txNode, len(s.txs)),
		blockTxs: make(map[string]map[string]int64, len(s.blockTxs)),
		outputs:  make(map[string]*outputNode, len(s.outputs)),
		byAddr:   make(map[string]map[string]struct{}, len(s.byAddr)),
		spends:   make(map[string]string, len(s.spends)),
	}
	for k, v := range s.blocks {
		n := *v
		n.height = copyHeight(v.height)
		snap.blocks[k] = &n
	}
	for k, v := range s.children {
		snap.children[k] = copySet(v)
	}
	for k, v := range s.byHeight {
		snap.byHeight[k] = v
	}
	for k, v := range s.txs {
		n := *v
		n.fee = copyHeight(v.fee)
		snap.txs[k] = &n
	}
	for k, v := range s.blockTxs {
		inc := make(map[string]int64, len(v))
		for txid, i := range v {
			inc[txid] = i
		}
		snap.blockTxs[k] = inc
	}
	for k, v := range s.outputs {
		n := *v
		snap.outputs[k] = &n
	}
	for k, v := range s.byAddr {
		snap.byAddr[k] = copySet(v)
	}
	for k, v := range s.spends {
		snap.spends[k] = v
	}
	return snap
}

// restore replaces the store state with a snapshot. Callers hold the lock.
func (s *Store) restore(snap state) {
	s.blocks = snap.blocks
	s.children = snap.children
	s.byHeight = snap.byHeight
	s.txs = snap.txs
	s.blockTxs = snap.blockTxs
	s.outputs = snap.outputs
	s.byAddr = snap.byAddr
	s.spends = snap.spends
}

func copySet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}
