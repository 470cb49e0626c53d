// Package chain defines the contract with the upstream chain data provider
// and the error taxonomy shared by the ingestion components.
package chain

import "context"

// Source supplies block and transaction payloads plus the current tip height.
// Implementations are expected to retry transient failures internally; a
// returned error is either permanent or the retry budget is exhausted.
type Source interface {
	GetTip(ctx context.Context) (int64, error)
	GetHash(ctx context.Context, height int64) (string, error)
	GetBlock(ctx context.Context, hash string) (*Block, error)
	GetTransaction(ctx context.Context, txid string) (*Transaction, error)
}

// Block is the raw block payload as returned by the provider.
type Block struct {
	Hash       string
	PrevHash   string
	Size       int64
	TxCount    int64
	Version    int64
	MerkleRoot string
	Time       int64
	Bits       string
	Nonce      int64
	TxIDs      []string
}

// Transaction is the raw transaction payload as returned by the provider.
// The coinbase variant carries a single synthetic input with Coinbase set.
type Transaction struct {
	TxID     string
	Version  int64
	LockTime int64
	Size     int64
	Inputs   []Input
	Outputs  []Output
}

// Input references an output of an earlier transaction.
type Input struct {
	PrevTxID  string
	PrevVout  int64
	ScriptSig string
	Sequence  int64
	Witness   []string
	Coinbase  string
}

// Output carries the value and locking script of a transaction output.
// Address is empty when the script does not resolve to one.
type Output struct {
	Value        float64
	ScriptPubKey string
	Address      string
}

// IsCoinbase reports whether the transaction is the block's coinbase.
func (t *Transaction) IsCoinbase() bool {
	return len(t.Inputs) == 1 && t.Inputs[0].Coinbase != ""
}
