package kvstore

import (
	"fmt"

	"github.com/fystack/bnbchain-adapter/pkg/common/config"
	"github.com/fystack/bnbchain-adapter/pkg/common/enum"
	"github.com/fystack/bnbchain-adapter/pkg/infra"
)

// NewFromConfig constructs an infra.KVStore based on kvstore configuration.
func NewFromConfig(cfg config.KVStoreCfg) (infra.KVStore, error) {
	switch cfg.Type {
	case enum.KVStoreTypeBadger:
		return NewBadgerStore(cfg.Badger.Directory, cfg.Badger.Prefix, infra.JSON)
	case enum.KVStoreTypeMemory:
		return NewInMemoryBadgerStore(cfg.Badger.Prefix, infra.JSON)
	default:
		return nil, fmt.Errorf("unsupported kvstore type: %s", cfg.Type)
	}
}
