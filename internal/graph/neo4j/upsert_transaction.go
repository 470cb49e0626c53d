package neo4j

import (
	"context"
	"fmt"

	"github.com/blockgraph/chaingraph-backend/internal/model"
)

// UpsertTransaction merges the transaction, its ordered inc edge, its
// outputs with locked edges, and in edges to every referenced output present
// in the store. The fee stays unset until all inputs resolve.
func (u txUnit) UpsertTransaction(ctx context.Context, tx model.Transaction) (*int64, error) {
	return u.upsertTransaction(ctx, tx, false)
}

// UpsertCoinbaseTransaction merges a coinbase transaction; no in edges, fee
// is always zero.
func (u txUnit) UpsertCoinbaseTransaction(ctx context.Context, tx model.Transaction) (*int64, error) {
	return u.upsertTransaction(ctx, tx, true)
}

func (u txUnit) upsertTransaction(ctx context.Context, tx model.Transaction, coinbase bool) (*int64, error) {
	if tx.TxID == "" {
		return nil, fmt.Errorf("txid is required")
	}

	if err := u.mergeTransactionNode(ctx, tx, coinbase); err != nil {
		return nil, err
	}
	if err := u.mergeIncEdge(ctx, tx); err != nil {
		return nil, err
	}
	outTotal, err := u.mergeOutputs(ctx, tx)
	if err != nil {
		return nil, err
	}

	if coinbase {
		zero := int64(0)
		if err := u.setFee(ctx, tx.TxID, zero); err != nil {
			return nil, err
		}
		return &zero, nil
	}

	resolved, inTotal, err := u.mergeInputs(ctx, tx)
	if err != nil {
		return nil, err
	}
	if resolved {
		fee := inTotal - outTotal
		if err := u.setFee(ctx, tx.TxID, fee); err != nil {
			return nil, err
		}
		return &fee, nil
	}

	// Unresolved inputs defer the fee; an earlier complete upsert may
	// already have stored it.
	return u.currentFee(ctx, tx.TxID)
}

func (u txUnit) mergeTransactionNode(ctx context.Context, tx model.Transaction, coinbase bool) error {
	const query = `
MERGE (t:Transaction {txid: $txid})
SET t.version = $version,
    t.locktime = $locktime,
    t.size = $size,
    t.coinbase = $coinbase`

	result, err := u.tx.Run(ctx, query, map[string]any{
		"txid":     tx.TxID,
		"version":  tx.Version,
		"locktime": tx.LockTime,
		"size":     tx.Size,
		"coinbase": coinbase,
	})
	if err != nil {
		return fmt.Errorf("merge transaction %s: %w", tx.TxID, err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("consume transaction merge %s: %w", tx.TxID, err)
	}
	return nil
}

func (u txUnit) mergeIncEdge(ctx context.Context, tx model.Transaction) error {
	if tx.BlockHash == "" {
		return nil
	}

	const query = `
MATCH (t:Transaction {txid: $txid}), (b:Block {hash: $block_hash})
MERGE (b)-[r:inc]->(t)
SET r.i = $index`

	result, err := u.tx.Run(ctx, query, map[string]any{
		"txid":       tx.TxID,
		"block_hash": tx.BlockHash,
		"index":      tx.Index,
	})
	if err != nil {
		return fmt.Errorf("merge inc edge %s->%s: %w", tx.BlockHash, tx.TxID, err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("consume inc edge merge %s: %w", tx.TxID, err)
	}
	return nil
}

func (u txUnit) mergeOutputs(ctx context.Context, tx model.Transaction) (int64, error) {
	var outTotal int64
	outputs := make([]map[string]any, 0, len(tx.Outputs))
	for _, out := range tx.Outputs {
		outputs = append(outputs, map[string]any{
			"id":            model.OutputID(tx.TxID, out.Index),
			"idx":           out.Index,
			"value":         out.Value,
			"script_pubkey": out.ScriptPubKey,
			"address":       out.Address,
		})
		outTotal += out.Value
	}
	if len(outputs) == 0 {
		return 0, nil
	}

	const query = `
MATCH (t:Transaction {txid: $txid})
UNWIND $outputs AS o
MERGE (out:Output {id: o.id})
SET out.idx = o.idx,
    out.value = o.value,
    out.script_pubkey = o.script_pubkey,
    out.spent = coalesce(out.spent, false)
MERGE (t)-[:out]->(out)
WITH o, out
WHERE o.address <> ''
MERGE (a:Address {address: o.address})
MERGE (out)-[:locked]->(a)`

	result, err := u.tx.Run(ctx, query, map[string]any{
		"txid":    tx.TxID,
		"outputs": outputs,
	})
	if err != nil {
		return 0, fmt.Errorf("merge outputs of %s: %w", tx.TxID, err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return 0, fmt.Errorf("consume outputs merge %s: %w", tx.TxID, err)
	}
	return outTotal, nil
}

// mergeInputs marks referenced outputs spent and links in edges. It reports
// whether every referenced output was present, and the sum of their values.
func (u txUnit) mergeInputs(ctx context.Context, tx model.Transaction) (bool, int64, error) {
	ids := make([]string, 0, len(tx.Inputs))
	for _, in := range tx.Inputs {
		ids = append(ids, model.OutputID(in.PrevTxID, in.PrevVout))
	}

	const query = `
MATCH (t:Transaction {txid: $txid})
UNWIND $ids AS id
MATCH (prev:Output {id: id})
SET prev.spent = true
MERGE (prev)-[:in]->(t)
RETURN count(prev) AS resolved, coalesce(sum(prev.value), 0) AS in_total`

	result, err := u.tx.Run(ctx, query, map[string]any{
		"txid": tx.TxID,
		"ids":  ids,
	})
	if err != nil {
		return false, 0, fmt.Errorf("merge inputs of %s: %w", tx.TxID, err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("collect inputs merge %s: %w", tx.TxID, err)
	}
	if len(records) == 0 {
		return len(ids) == 0, 0, nil
	}

	resolvedValue, _ := records[0].Get("resolved")
	inTotalValue, _ := records[0].Get("in_total")
	resolvedCount, _ := resolvedValue.(int64)
	inTotal, _ := inTotalValue.(int64)

	return resolvedCount == int64(len(ids)), inTotal, nil
}

func (u txUnit) setFee(ctx context.Context, txid string, fee int64) error {
	const query = `MATCH (t:Transaction {txid: $txid}) SET t.fee = $fee`

	result, err := u.tx.Run(ctx, query, map[string]any{"txid": txid, "fee": fee})
	if err != nil {
		return fmt.Errorf("set fee on %s: %w", txid, err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("consume fee set %s: %w", txid, err)
	}
	return nil
}

func (u txUnit) currentFee(ctx context.Context, txid string) (*int64, error) {
	const query = `MATCH (t:Transaction {txid: $txid}) RETURN t.fee AS fee`

	result, err := u.tx.Run(ctx, query, map[string]any{"txid": txid})
	if err != nil {
		return nil, fmt.Errorf("read fee of %s: %w", txid, err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect fee of %s: %w", txid, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	feeValue, _ := records[0].Get("fee")
	return nullableInt64(feeValue), nil
}
