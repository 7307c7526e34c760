package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	rpcbinance "github.com/fystack/bnbchain-adapter/internal/rpc/binance"
	"github.com/fystack/bnbchain-adapter/internal/worker"
	"github.com/fystack/bnbchain-adapter/pkg/binance"
	"github.com/fystack/bnbchain-adapter/pkg/common/types"
)

func newTxsCmd() *cobra.Command {
	var (
		addresses []string
		since     time.Duration
		limit     int
		txType    string
		asset     string
	)

	cmd := &cobra.Command{
		Use:   "txs",
		Short: "Fetch and normalize the transactions of one or more addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(opts.cfg.Binance)
			if limit <= 0 {
				limit = opts.cfg.Binance.Limit
			}
			query := rpcbinance.TxQuery{
				StartTime: time.Now().Add(-since),
				Limit:     limit,
				TxType:    binance.TxType(txType),
				TxAsset:   asset,
			}

			var (
				mu      sync.Mutex
				all     []types.Tx
				skipped int
			)
			g, gctx := errgroup.WithContext(cmd.Context())
			for _, addr := range worker.NormalizeAddresses(addresses) {
				addr := addr
				g.Go(func() error {
					records, err := fetchAll(gctx, client, addr, query)
					if err != nil {
						return fmt.Errorf("%s: %w", addr, err)
					}
					txs := binance.NormalizeTxs(records)

					mu.Lock()
					defer mu.Unlock()
					all = append(all, txs...)
					skipped += len(records) - len(txs)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if skipped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d records with an unknown asset\n", skipped)
			}
			sort.SliceStable(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(all)
		},
	}

	cmd.Flags().StringSliceVar(&addresses, "address", nil, "Address to read, repeatable.")
	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "How far back to read.")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size, defaults to the configured limit.")
	cmd.Flags().StringVar(&txType, "type", "", "Only this chain tx type, e.g. TRANSFER.")
	cmd.Flags().StringVar(&asset, "asset", "", "Only this asset symbol.")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

// fetchAll reads every page of an address's records in the query window.
func fetchAll(ctx context.Context, client rpcbinance.BinanceAPI, address string, query rpcbinance.TxQuery) ([]binance.Tx, error) {
	var records []binance.Tx
	for {
		page, err := client.GetTransactions(ctx, address, query)
		if err != nil {
			return nil, err
		}
		records = append(records, page.Tx...)

		query.Offset += len(page.Tx)
		if len(page.Tx) == 0 || query.Offset >= page.Total {
			return records, nil
		}
	}
}
