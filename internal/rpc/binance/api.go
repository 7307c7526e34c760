package binance

import (
	"context"

	"github.com/fystack/bnbchain-adapter/pkg/binance"
)

// BinanceAPI is the subset of the Binance Chain REST API the adapter reads.
type BinanceAPI interface {
	GetTransactions(ctx context.Context, address string, q TxQuery) (*binance.TxPage, error)
	GetFees(ctx context.Context) ([]binance.FeeParam, error)
	GetTx(ctx context.Context, hash string) (*TxResult, error)
	GetURL() string
}
