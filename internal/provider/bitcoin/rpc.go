package bitcoin

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// RPCClient wraps the node client with metrics instrumentation.
type RPCClient struct {
	client  RPCAPI
	metrics RPCMetrics
}

// NewRPCClient constructs an instrumented RPC client.
func NewRPCClient(client RPCAPI, metrics RPCMetrics) *RPCClient {
	return &RPCClient{
		client:  client,
		metrics: metrics,
	}
}

// GetBlockCount returns the latest block count.
func (r *RPCClient) GetBlockCount() (count int64, err error) {
	started := time.Now()
	defer func() {
		r.observe("get_block_count", err, started)
	}()
	return r.client.GetBlockCount()
}

// GetBlockHash returns the block hash for a height.
func (r *RPCClient) GetBlockHash(height int64) (hash *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		r.observe("get_block_hash", err, started)
	}()
	return r.client.GetBlockHash(height)
}

// GetBlockVerbose returns a verbose block with transaction ids.
func (r *RPCClient) GetBlockVerbose(hash *chainhash.Hash) (res *btcjson.GetBlockVerboseResult, err error) {
	started := time.Now()
	defer func() {
		r.observe("get_block_verbose", err, started)
	}()
	return r.client.GetBlockVerbose(hash)
}

// GetRawTransactionVerbose returns a decoded transaction.
func (r *RPCClient) GetRawTransactionVerbose(hash *chainhash.Hash) (res *btcjson.TxRawResult, err error) {
	started := time.Now()
	defer func() {
		r.observe("get_raw_transaction_verbose", err, started)
	}()
	return r.client.GetRawTransactionVerbose(hash)
}

func (r *RPCClient) observe(operation string, err error, started time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.Observe(operation, err, started)
}
