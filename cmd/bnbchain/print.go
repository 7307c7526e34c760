package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/fystack/bnbchain-adapter/pkg/common/logger"
	"github.com/fystack/bnbchain-adapter/pkg/common/types"
	"github.com/fystack/bnbchain-adapter/pkg/events"
	"github.com/fystack/bnbchain-adapter/pkg/infra"
)

type receivedEvent struct {
	events.AdapterEvent
	Data json.RawMessage `json:"data"`
}

func newPrintCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the transactions published on NATS",
		RunE: func(cmd *cobra.Command, args []string) error {
			natsCfg := opts.cfg.NATS
			if subject != "" {
				natsCfg.Subject = subject
			}

			nc, err := infra.GetNATSConnection(natsCfg)
			if err != nil {
				return fmt.Errorf("nats connect: %w", err)
			}
			defer nc.Close()

			out := cmd.OutOrStdout()
			sub, err := nc.Subscribe(natsCfg.Subject, func(msg *nats.Msg) {
				var ev receivedEvent
				if err := json.Unmarshal(msg.Data, &ev); err != nil {
					logger.Error("Unmarshal error", "err", err)
					return
				}
				if ev.Type != events.EventTypeTransaction {
					return
				}
				var tx types.Tx
				if err := tx.UnmarshalBinary(ev.Data); err != nil {
					logger.Error("Unmarshal tx error", "err", err)
					return
				}
				fmt.Fprintln(out, tx.String())
			})
			if err != nil {
				return fmt.Errorf("nats subscribe: %w", err)
			}
			defer func() { _ = sub.Unsubscribe() }()

			logger.Info("Subscribed to", "subject", natsCfg.Subject)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject to subscribe to, defaults to the configured one.")
	return cmd
}
