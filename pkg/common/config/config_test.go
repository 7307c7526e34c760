package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fystack/bnbchain-adapter/pkg/common/constant"
	"github.com/fystack/bnbchain-adapter/pkg/common/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: development
binance:
  addresses:
    - " bnb1z220ps26qlwfgz5dew9hdxe8m5malre3qy6zr9 "
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, enum.NetworkMainnet, cfg.Binance.Network)
	assert.Equal(t, constant.MainnetAPIURL, cfg.Binance.APIURL)
	assert.Equal(t, constant.MainnetWSURL, cfg.Binance.WSURL)
	assert.Equal(t, "bnb", cfg.Binance.HRP)
	assert.Equal(t, 10*time.Second, cfg.Binance.PollInterval)
	assert.Equal(t, 100, cfg.Binance.Limit)
	assert.Equal(t, 3, cfg.Binance.Client.MaxRetries)
	assert.Equal(t, enum.KVStoreTypeBadger, cfg.KVStore.Type)
	assert.Equal(t, []string{"bnb1z220ps26qlwfgz5dew9hdxe8m5malre3qy6zr9"}, cfg.Binance.Addresses)
}

func TestLoad_TestnetDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: development
binance:
  network: testnet
  limit: 50
kvstore:
  type: memory
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, constant.TestnetAPIURL, cfg.Binance.APIURL)
	assert.Equal(t, "tbnb", cfg.Binance.HRP)
	assert.Equal(t, 50, cfg.Binance.Limit)
	assert.Equal(t, enum.KVStoreTypeMemory, cfg.KVStore.Type)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BNB_API_URL", "http://localhost:8080/")
	t.Setenv("NATS_URL", "nats://127.0.0.1:4222")

	cfg, err := Load(writeConfig(t, "environment: production\n"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Binance.APIURL)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: staging\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "environment: development\nbinance:\n  network: devnet\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
