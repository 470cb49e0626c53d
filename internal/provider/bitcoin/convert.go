package bitcoin

import (
	"github.com/btcsuite/btcd/btcjson"

	"github.com/blockgraph/chaingraph-backend/internal/chain"
	"github.com/blockgraph/chaingraph-backend/internal/model"
)

// blockFromVerbose maps a verbose block result onto the raw chain payload.
// The node omits previousblockhash for the genesis block; the sentinel value
// stands in so downstream height assignment recognizes it.
func blockFromVerbose(src *btcjson.GetBlockVerboseResult) *chain.Block {
	prev := src.PreviousHash
	if prev == "" {
		prev = model.GenesisPrevHash
	}
	return &chain.Block{
		Hash:       src.Hash,
		PrevHash:   prev,
		Size:       int64(src.Size),
		TxCount:    int64(len(src.Tx)),
		Version:    int64(src.Version),
		MerkleRoot: src.MerkleRoot,
		Time:       src.Time,
		Bits:       src.Bits,
		Nonce:      int64(src.Nonce),
		TxIDs:      append([]string(nil), src.Tx...),
	}
}

// transactionFromRaw maps a decoded transaction onto the raw chain payload,
// resolving output addresses through the script decoder.
func transactionFromRaw(src *btcjson.TxRawResult, decoder *ScriptDecoder) (*chain.Transaction, error) {
	inputs := make([]chain.Input, 0, len(src.Vin))
	for _, vin := range src.Vin {
		if vin.IsCoinBase() {
			inputs = append(inputs, chain.Input{Coinbase: vin.Coinbase})
			continue
		}
		var scriptSig string
		if vin.ScriptSig != nil {
			scriptSig = vin.ScriptSig.Hex
		}
		inputs = append(inputs, chain.Input{
			PrevTxID:  vin.Txid,
			PrevVout:  int64(vin.Vout),
			ScriptSig: scriptSig,
			Sequence:  int64(vin.Sequence),
			Witness:   append([]string(nil), vin.Witness...),
		})
	}

	outputs := make([]chain.Output, 0, len(src.Vout))
	for _, vout := range src.Vout {
		address, err := decoder.Address(vout)
		if err != nil {
			// An undecodable script is not an error, the output simply
			// carries no address.
			address = ""
		}
		outputs = append(outputs, chain.Output{
			Value:        vout.Value,
			ScriptPubKey: vout.ScriptPubKey.Hex,
			Address:      address,
		})
	}

	return &chain.Transaction{
		TxID:     src.Txid,
		Version:  int64(src.Version),
		LockTime: int64(src.LockTime),
		Size:     int64(src.Size),
		Inputs:   inputs,
		Outputs:  outputs,
	}, nil
}
