package constant

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	MainnetAPIURL = "https://dex.binance.org"
	MainnetWSURL  = "wss://dex.binance.org/api/ws"
	TestnetAPIURL = "https://testnet-dex.binance.org"
	TestnetWSURL  = "wss://testnet-dex.binance.org/api/ws"

	// Max page size accepted by /api/v1/transactions.
	MaxTxPageLimit = 1000

	TransferStream = "transfers"

	KVPrefixSeenTx = "seen_tx"
	KVPrefixCursor = "cursor"
)
