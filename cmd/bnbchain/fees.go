package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fystack/bnbchain-adapter/pkg/binance"
)

func newFeesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fees",
		Short: "Show the current fee schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := newClient(opts.cfg.Binance).GetFees(cmd.Context())
			if err != nil {
				return err
			}
			schedule, err := binance.ClassifyFees(params)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tNAME\tFEE\tFOR")
			for _, v := range schedule {
				switch f := v.(type) {
				case binance.Fee:
					kind := "fee"
					if f.IsFreeze() {
						kind = "freeze"
					}
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", kind, f.MsgType, f.Fee, f.FeeFor)
				case binance.TransferFee:
					fmt.Fprintf(w, "transfer\t%s\t%d\t%s\n", f.FixedFeeParams.MsgType, f.FixedFeeParams.Fee, f.FixedFeeParams.FeeFor)
					fmt.Fprintf(w, "transfer\tmulti (>= %d outputs)\t%d\t\n", f.LowerLimitAsMulti, f.MultiTransferFee)
				case binance.DexFees:
					for _, field := range f.DexFeeFields {
						fmt.Fprintf(w, "dex\t%s\t%d\t\n", field.FeeName, field.FeeValue)
					}
				}
			}
			return w.Flush()
		},
	}
}
