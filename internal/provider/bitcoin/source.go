package bitcoin

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/blockgraph/chaingraph-backend/internal/chain"
)

// Source implements chain.Source against a Bitcoin Core node. Every call
// waits for a rate limit slot before each attempt and retries transient
// failures with exponential backoff.
type Source struct {
	rpc     RPCAPI
	limiter Limiter
	decoder *ScriptDecoder
	retry   RetryConfig
	metrics RPCMetrics
}

// NewSource builds a Source for the given network.
func NewSource(rpc RPCAPI, limiter Limiter, network string, retry RetryConfig, metrics RPCMetrics) (*Source, error) {
	decoder, err := NewScriptDecoder(network)
	if err != nil {
		return nil, err
	}
	return &Source{
		rpc:     rpc,
		limiter: limiter,
		decoder: decoder,
		retry:   retry.withDefaults(),
		metrics: metrics,
	}, nil
}

// GetTip returns the node's current best height.
func (s *Source) GetTip(ctx context.Context) (int64, error) {
	count, err := call(ctx, s, s.rpc.GetBlockCount)
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	return count, nil
}

// GetHash returns the canonical block hash at the height.
func (s *Source) GetHash(ctx context.Context, height int64) (string, error) {
	hash, err := call(ctx, s, func() (*chainhash.Hash, error) {
		return s.rpc.GetBlockHash(height)
	})
	if err != nil {
		return "", fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	return hash.String(), nil
}

// GetBlock fetches the block payload by hash.
func (s *Source) GetBlock(ctx context.Context, hash string) (*chain.Block, error) {
	blockHash, err := chainhash.NewHashFromStr(hash)
	if err != nil {
		return nil, fmt.Errorf("parse block hash %s: %w", hash, err)
	}
	res, err := call(ctx, s, func() (*btcjson.GetBlockVerboseResult, error) {
		return s.rpc.GetBlockVerbose(blockHash)
	})
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	return blockFromVerbose(res), nil
}

// GetTransaction fetches and decodes the transaction payload by id.
func (s *Source) GetTransaction(ctx context.Context, txid string) (*chain.Transaction, error) {
	txHash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return nil, fmt.Errorf("parse txid %s: %w", txid, err)
	}
	res, err := call(ctx, s, func() (*btcjson.TxRawResult, error) {
		return s.rpc.GetRawTransactionVerbose(txHash)
	})
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", txid, err)
	}
	return transactionFromRaw(res, s.decoder)
}

// call runs op under the retry policy, waiting for a rate limit slot before
// every attempt.
func call[T any](ctx context.Context, s *Source, op func() (T, error)) (T, error) {
	return withRetry(ctx, s.retry, func() (T, error) {
		if err := s.acquire(ctx); err != nil {
			var zero T
			return zero, err
		}
		return op()
	})
}

func (s *Source) acquire(ctx context.Context) error {
	started := time.Now()
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.ObserveRateLimitWait(started)
	}
	return nil
}
