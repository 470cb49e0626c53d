package ingest

import (
	"fmt"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/blockgraph/chaingraph-backend/internal/chain"
	"github.com/blockgraph/chaingraph-backend/internal/model"
)

// NormalizeBlock converts a raw provider block into the canonical record.
func NormalizeBlock(src *chain.Block) (model.Block, error) {
	if src.Hash == "" {
		return model.Block{}, fmt.Errorf("block without hash")
	}
	bits, err := parseBits(src.Bits)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %s bits parse: %w", src.Hash, err)
	}
	return model.Block{
		Hash:       src.Hash,
		PrevHash:   src.PrevHash,
		Size:       src.Size,
		TxCount:    src.TxCount,
		Version:    src.Version,
		MerkleRoot: src.MerkleRoot,
		Time:       time.Unix(src.Time, 0).UTC(),
		Bits:       bits,
		Nonce:      src.Nonce,
	}, nil
}

// NormalizeTransaction converts a raw provider transaction into the
// canonical record, placing it at the given position within the block.
func NormalizeTransaction(src *chain.Transaction, blockHash string, index int64) (model.Transaction, error) {
	if src.TxID == "" {
		return model.Transaction{}, fmt.Errorf("transaction without txid")
	}

	outputs := make([]model.Output, 0, len(src.Outputs))
	for i, out := range src.Outputs {
		if out.Value < 0 {
			return model.Transaction{}, fmt.Errorf("tx %s output %d negative value: %f", src.TxID, i, out.Value)
		}
		value, err := toSatoshis(out.Value)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s output %d convert value: %w", src.TxID, i, err)
		}
		outputs = append(outputs, model.Output{
			Index:        int64(i),
			Value:        value,
			ScriptPubKey: out.ScriptPubKey,
			Address:      out.Address,
		})
	}

	coinbase := src.IsCoinbase()
	inputs := make([]model.Input, 0, len(src.Inputs))
	if !coinbase {
		for _, in := range src.Inputs {
			inputs = append(inputs, model.Input{
				PrevTxID:  in.PrevTxID,
				PrevVout:  in.PrevVout,
				ScriptSig: in.ScriptSig,
				Sequence:  in.Sequence,
				Witness:   append([]string(nil), in.Witness...),
			})
		}
	}

	return model.Transaction{
		TxID:      src.TxID,
		BlockHash: blockHash,
		Index:     index,
		Version:   src.Version,
		LockTime:  src.LockTime,
		Size:      src.Size,
		Coinbase:  coinbase,
		Inputs:    inputs,
		Outputs:   outputs,
	}, nil
}

func parseBits(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, err
	}
	return int64(parsed), nil
}

func toSatoshis(value float64) (int64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return int64(amt), nil
}
