// Package bitcoin adapts a Bitcoin Core JSON-RPC node to the chain source
// contract with retry, rate limiting and metrics instrumentation.
package bitcoin

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCAPI is the subset of the node RPC surface the provider uses.
	RPCAPI interface {
		GetBlockCount() (int64, error)
		GetBlockHash(height int64) (*chainhash.Hash, error)
		GetBlockVerbose(hash *chainhash.Hash) (*btcjson.GetBlockVerboseResult, error)
		GetRawTransactionVerbose(hash *chainhash.Hash) (*btcjson.TxRawResult, error)
	}

	// RPCMetrics records metrics for RPC calls; nil disables observation.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
		ObserveRateLimitWait(started time.Time)
	}

	// Limiter gates outgoing requests against the provider budget.
	Limiter interface {
		Wait(ctx context.Context) error
	}
)
