package binance

import "github.com/fystack/bnbchain-adapter/pkg/common/types"

// Decimals is the fixed precision of every BEP2 amount.
const Decimals = 8

// NormalizeTx reshapes a REST record into the normalized tx. It returns false when
// the asset symbol cannot be parsed; callers skip such records.
func NormalizeTx(tx Tx) (*types.Tx, bool) {
	asset, ok := types.ParseAsset(string(types.ChainBinance) + "." + tx.TxAsset)
	if !ok {
		return nil, false
	}

	amount := types.ToBaseAmount(tx.Value, Decimals)
	return &types.Tx{
		Asset: asset,
		From:  []types.TxFrom{{From: tx.FromAddr, Amount: amount}},
		To:    []types.TxTo{{To: tx.ToAddr, Amount: amount}},
		Date:  tx.TimeStamp.Time,
		Type:  MapTxType(tx.TxType),
		Hash:  tx.TxHash,
	}, true
}

// NormalizeTxs normalizes a page of records, dropping the ones NormalizeTx rejects.
func NormalizeTxs(txs []Tx) []types.Tx {
	out := make([]types.Tx, 0, len(txs))
	for _, tx := range txs {
		if n, ok := NormalizeTx(tx); ok {
			out = append(out, *n)
		}
	}
	return out
}
