package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fystack/bnbchain-adapter/internal/stream"
	"github.com/fystack/bnbchain-adapter/internal/worker"
	"github.com/fystack/bnbchain-adapter/pkg/common/config"
	"github.com/fystack/bnbchain-adapter/pkg/common/logger"
	"github.com/fystack/bnbchain-adapter/pkg/events"
	"github.com/fystack/bnbchain-adapter/pkg/infra"
	"github.com/fystack/bnbchain-adapter/pkg/kvstore"
	"github.com/fystack/bnbchain-adapter/pkg/retry"
	"github.com/fystack/bnbchain-adapter/pkg/store/txstore"
)

var ErrNoAddresses = errors.New("no addresses to watch")

func newWatchCmd() *cobra.Command {
	var (
		addresses []string
		noStream  bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the watched addresses and publish every new transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			cfg.Binance.Addresses = worker.NormalizeAddresses(append(cfg.Binance.Addresses, addresses...))
			if len(cfg.Binance.Addresses) == 0 {
				return ErrNoAddresses
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cfg, !noStream)
		},
	}

	cmd.Flags().StringSliceVar(&addresses, "address", nil, "Extra address to watch, repeatable.")
	cmd.Flags().BoolVar(&noStream, "no-stream", false, "Only poll, do not follow the transfers websocket.")
	return cmd
}

func runWatch(ctx context.Context, cfg config.Config, withStream bool) error {
	kv, err := kvstore.NewFromConfig(cfg.KVStore)
	if err != nil {
		return err
	}
	store := txstore.New(kv)
	defer store.Close()

	emitter, err := newEmitter(cfg.NATS)
	if err != nil {
		return err
	}
	defer emitter.Close()

	poller := worker.NewPoller(ctx, cfg.Binance, worker.PollerDeps{
		Client:  newClient(cfg.Binance),
		Store:   store,
		Emitter: emitter,
	})
	poller.Start()
	defer poller.Stop()

	g, gctx := errgroup.WithContext(ctx)
	if withStream {
		sub := stream.NewSubscriber(stream.Config{
			URL:        cfg.Binance.WSURL,
			Addresses:  poller.Addresses(),
			RetryDelay: cfg.Binance.Client.RetryDelay,
		}, func(ctx context.Context, t stream.Transfer) error {
			logger.Info("Transfer seen on stream", "hash", t.Hash, "memo_hash", t.MemoTxHash)
			// the REST API is the source of truth, the stream only shortens the wait
			poller.Trigger(t.Event.Data.From)
			for _, out := range t.Event.Data.To {
				poller.Trigger(out.Address)
			}
			return nil
		})
		g.Go(func() error {
			return sub.Run(gctx)
		})
	}

	logger.Info("Watching addresses... Press Ctrl+C to stop", "count", len(poller.Addresses()))
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})
	return g.Wait()
}

// newEmitter publishes to NATS when a url is configured and to stdout otherwise.
func newEmitter(cfg config.NATSConfig) (events.Emitter, error) {
	if cfg.URL == "" {
		logger.Info("No NATS url configured, writing events to stdout")
		return events.NewWriterEmitter(os.Stdout), nil
	}

	var nc *nats.Conn
	err := retry.Constant(func() error {
		var err error
		nc, err = infra.GetNATSConnection(cfg)
		if err != nil {
			logger.Warn("NATS connect failed, retrying", "err", err)
		}
		return err
	}, 2*time.Second, retry.DefaultMaxAttempts)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to NATS", "url", nc.ConnectedUrl(), "subject", cfg.Subject)
	return events.NewNATSEmitter(nc, cfg.Subject), nil
}
