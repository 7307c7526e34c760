package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/fystack/bnbchain-adapter/pkg/common/constant"
	"github.com/fystack/bnbchain-adapter/pkg/common/enum"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

var validate = validator.New()

const DefaultPollInterval = 10 * time.Second

type Config struct {
	Environment string        `yaml:"environment" validate:"required,oneof=production development"`
	Binance     BinanceConfig `yaml:"binance"     validate:"required"`
	NATS        NATSConfig    `yaml:"nats"`
	KVStore     KVStoreCfg    `yaml:"kvstore"     validate:"required"`
}

type BinanceConfig struct {
	Network      enum.Network  `yaml:"network"       validate:"required,oneof=mainnet testnet"`
	APIURL       string        `yaml:"api_url"       validate:"required,url"`
	WSURL        string        `yaml:"ws_url"        validate:"required,url"`
	HRP          string        `yaml:"hrp"           validate:"required"`
	Addresses    []string      `yaml:"addresses"`
	PollInterval time.Duration `yaml:"poll_interval" validate:"required"`
	Lookback     time.Duration `yaml:"lookback"`
	Limit        int           `yaml:"limit"         validate:"min=1,max=1000"`
	Client       ClientConfig  `yaml:"client"`
}

type ClientConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries" validate:"min=0"`
	RetryDelay time.Duration `yaml:"retry_delay"`
	Throttle   Throttle      `yaml:"throttle"`
}

type Throttle struct {
	RPS   int `yaml:"rps"`
	Burst int `yaml:"burst"`
}

type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type KVStoreCfg struct {
	Type   enum.KVStoreType `yaml:"type" validate:"required,oneof=badger memory"`
	Badger BadgerKVCfg      `yaml:"badger"`
}

type BadgerKVCfg struct {
	Directory string `yaml:"directory"`
	Prefix    string `yaml:"prefix"`
}

// Defaults returns the settings applied to every field a config file leaves empty.
func Defaults(network enum.Network) Config {
	apiURL, wsURL := constant.MainnetAPIURL, constant.MainnetWSURL
	hrp := "bnb"
	if network == enum.NetworkTestnet {
		apiURL, wsURL = constant.TestnetAPIURL, constant.TestnetWSURL
		hrp = "tbnb"
	}

	return Config{
		Environment: constant.EnvDevelopment,
		Binance: BinanceConfig{
			Network:      network,
			APIURL:       apiURL,
			WSURL:        wsURL,
			HRP:          hrp,
			PollInterval: DefaultPollInterval,
			Lookback:     24 * time.Hour,
			Limit:        100,
			Client: ClientConfig{
				Timeout:    5 * time.Second,
				MaxRetries: 3,
				RetryDelay: 500 * time.Millisecond,
				Throttle:   Throttle{RPS: 10, Burst: 20},
			},
		},
		NATS: NATSConfig{
			Subject: "bnbchain.transfer.event",
		},
		KVStore: KVStoreCfg{
			Type: enum.KVStoreTypeBadger,
			Badger: BadgerKVCfg{
				Directory: "data/badger",
				Prefix:    "bnbchain",
			},
		},
	}
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return Finalize(cfg)
}

// Finalize merges defaults, applies environment overrides and validates.
func Finalize(cfg Config) (Config, error) {
	network := cfg.Binance.Network
	if network == "" {
		network = enum.NetworkMainnet
	}
	if err := mergo.Merge(&cfg, Defaults(network)); err != nil {
		return cfg, fmt.Errorf("merge defaults: %w", err)
	}

	if v := strings.TrimSpace(os.Getenv("BNB_API_URL")); v != "" {
		cfg.Binance.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("BNB_WS_URL")); v != "" {
		cfg.Binance.WSURL = v
	}
	if v := strings.TrimSpace(os.Getenv("NATS_URL")); v != "" {
		cfg.NATS.URL = v
	}

	cfg.Binance.APIURL = strings.TrimSuffix(cfg.Binance.APIURL, "/")
	for i, addr := range cfg.Binance.Addresses {
		cfg.Binance.Addresses[i] = strings.TrimSpace(addr)
	}

	if err := validate.Struct(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
