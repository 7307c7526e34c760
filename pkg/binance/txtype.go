package binance

import "github.com/fystack/bnbchain-adapter/pkg/common/types"

// MapTxType maps a chain tx type onto the normalized type. Codes without a
// normalized counterpart map to unknown.
func MapTxType(t TxType) types.TxType {
	switch t {
	case TxTypeTransfer, TxTypeDeposit:
		return types.TxTypeTransfer
	case TxTypeFreezeToken:
		return types.TxTypeFreeze
	case TxTypeUnfreezeToken:
		return types.TxTypeUnfreeze
	default:
		return types.TxTypeUnknown
	}
}
