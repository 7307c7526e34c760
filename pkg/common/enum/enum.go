package enum

type Network string
type KVStoreType string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

const (
	KVStoreTypeBadger KVStoreType = "badger"
	KVStoreTypeMemory KVStoreType = "memory"
)
