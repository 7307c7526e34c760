package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fystack/bnbchain-adapter/internal/rpc"
	rpcbinance "github.com/fystack/bnbchain-adapter/internal/rpc/binance"
	"github.com/fystack/bnbchain-adapter/pkg/binance/amino"
	"github.com/fystack/bnbchain-adapter/pkg/common/config"
	"github.com/fystack/bnbchain-adapter/pkg/common/enum"
	"github.com/fystack/bnbchain-adapter/pkg/common/logger"
	"github.com/fystack/bnbchain-adapter/pkg/ratelimiter"
)

type rootOptions struct {
	ConfigPath string
	Network    string
	Debug      bool

	cfg config.Config
}

var opts rootOptions

var rootCmd = &cobra.Command{
	Use:           "bnbchain",
	Short:         "Binance Chain transaction adapter",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if opts.Debug {
			level = slog.LevelDebug
		}
		logger.Init(&logger.Options{
			Level:      level,
			Writer:     os.Stderr,
			TimeFormat: time.RFC3339,
		})

		cfg, err := loadConfig(opts.ConfigPath, enum.Network(opts.Network))
		if err != nil {
			return err
		}
		amino.SetBech32Prefix(cfg.Binance.HRP)
		opts.cfg = cfg
		return nil
	},
}

// Execute attaches the subcommands and runs the root command.
func Execute() {
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "configs/config.yaml", "Path to config file.")
	rootCmd.PersistentFlags().StringVar(&opts.Network, "network", "", "Override the configured network (mainnet, testnet).")
	rootCmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "Enable debug logs.")

	rootCmd.AddCommand(
		newTxsCmd(),
		newFeesCmd(),
		newDecodeCmd(),
		newWatchCmd(),
		newPrintCmd(),
		newStateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", "err", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, or runs on defaults when the file does not exist.
func loadConfig(path string, network enum.Network) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		logger.Debug("Config file not found, using defaults", "path", path)
		cfg.Binance.Network = network
		cfg, err = config.Finalize(cfg)
	} else {
		cfg, err = config.Load(path)
		if err == nil && network != "" && network != cfg.Binance.Network {
			// switching network also switches the default endpoints
			cfg.Binance.Network = network
			cfg.Binance.APIURL, cfg.Binance.WSURL, cfg.Binance.HRP = "", "", ""
			cfg, err = config.Finalize(cfg)
		}
	}
	if err != nil {
		return cfg, err
	}
	logger.Debug("Config loaded", "network", cfg.Binance.Network, "api", cfg.Binance.APIURL)
	return cfg, nil
}

func newClient(cfg config.BinanceConfig) *rpcbinance.Client {
	throttle := cfg.Client.Throttle
	return rpcbinance.NewBinanceClient(
		cfg.APIURL,
		nil,
		rpc.ClientConfig{
			Timeout:    cfg.Client.Timeout,
			MaxRetries: cfg.Client.MaxRetries,
			RetryDelay: cfg.Client.RetryDelay,
		},
		ratelimiter.Shared(cfg.APIURL, throttle.RPS, throttle.Burst),
	)
}
