// Package model holds the canonical records persisted to the graph store.
// Provider payloads are normalized into these types once, at the ingestion
// boundary, before anything enters the store.
package model

import (
	"strconv"
	"time"
)

// GenesisPrevHash is the sentinel previous-hash carried by the genesis
// block. A block with this prevhash is forced to height 0 unconditionally.
const GenesisPrevHash = "0000000000000000000000000000000000000000000000000000000000000000"

// Block is a canonical block header record keyed by hash. Height is nil
// ("pending") until the parent chain resolves it.
type Block struct {
	Hash       string
	PrevHash   string
	Height     *int64
	Size       int64
	TxCount    int64
	Version    int64
	MerkleRoot string
	Time       time.Time
	Bits       int64
	Nonce      int64
}

// IsGenesis reports whether the block carries the sentinel prevhash.
func (b Block) IsGenesis() bool {
	return b.PrevHash == GenesisPrevHash
}

// Transaction is a canonical transaction record keyed by txid. Index is the
// transaction's position within its block; persistence must follow ascending
// index order for deterministic edge and fee semantics.
type Transaction struct {
	TxID      string
	BlockHash string
	Index     int64
	Version   int64
	LockTime  int64
	Size      int64
	Coinbase  bool
	Inputs    []Input
	Outputs   []Output
}

// Input consumes an output of a previous transaction.
type Input struct {
	PrevTxID  string
	PrevVout  int64
	ScriptSig string
	Sequence  int64
	Witness   []string
}

// Output is identified by its transaction id and position.
// Value is in the chain's smallest unit.
type Output struct {
	Index        int64
	Value        int64
	ScriptPubKey string
	Address      string
}

// OutputID renders the canonical output identity "txid:index".
func OutputID(txid string, index int64) string {
	return txid + ":" + strconv.FormatInt(index, 10)
}
