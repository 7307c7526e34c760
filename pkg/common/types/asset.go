package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Chain identifies the chain namespace of an asset string, e.g. the "BNB" in "BNB.BUSD-BD1".
type Chain string

const (
	ChainBinance  Chain = "BNB"
	ChainBitcoin  Chain = "BTC"
	ChainEthereum Chain = "ETH"
	ChainTHOR     Chain = "THOR"
	ChainCosmos   Chain = "GAIA"
	ChainBCH      Chain = "BCH"
	ChainLitecoin Chain = "LTC"
	ChainDoge     Chain = "DOGE"
	ChainPolkadot Chain = "POLKA"
)

var knownChains = map[Chain]struct{}{
	ChainBinance:  {},
	ChainBitcoin:  {},
	ChainEthereum: {},
	ChainTHOR:     {},
	ChainCosmos:   {},
	ChainBCH:      {},
	ChainLitecoin: {},
	ChainDoge:     {},
	ChainPolkadot: {},
}

func IsChain(c string) bool {
	_, ok := knownChains[Chain(c)]
	return ok
}

type Asset struct {
	Chain  Chain  `json:"chain"`
	Symbol string `json:"symbol"`
	Ticker string `json:"ticker"`
}

var AssetBNB = Asset{Chain: ChainBinance, Symbol: "BNB", Ticker: "BNB"}

func (a Asset) String() string {
	return string(a.Chain) + "." + a.Symbol
}

// ParseAsset parses "CHAIN.SYMBOL". The ticker is the symbol up to the first '-'.
func ParseAsset(s string) (Asset, bool) {
	chain, symbol, found := strings.Cut(s, ".")
	if !found || chain == "" || symbol == "" {
		return Asset{}, false
	}
	if !IsChain(chain) {
		return Asset{}, false
	}
	ticker, _, _ := strings.Cut(symbol, "-")
	return Asset{Chain: Chain(chain), Symbol: symbol, Ticker: ticker}, true
}

// BaseAmount is an integer amount in the asset's smallest unit.
type BaseAmount struct {
	Amount   decimal.Decimal `json:"amount"`
	Decimals int32           `json:"decimals"`
}

// ToBaseAmount scales a decimal asset amount by 10^decimals. Digits past the
// precision are rounded half up.
func ToBaseAmount(value decimal.Decimal, decimals int32) BaseAmount {
	return BaseAmount{
		Amount:   value.Round(decimals).Shift(decimals),
		Decimals: decimals,
	}
}

func (b BaseAmount) String() string {
	return b.Amount.String()
}

// AssetAmount converts back to the human readable decimal amount.
func (b BaseAmount) AssetAmount() decimal.Decimal {
	return b.Amount.Shift(-b.Decimals)
}
