package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fystack/bnbchain-adapter/pkg/kvstore"
	"github.com/fystack/bnbchain-adapter/pkg/store/txstore"
)

func newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or reset the adapter's local state",
	}
	cmd.AddCommand(newStateDumpCmd(), newStateResetCmd())
	return cmd
}

func newStateDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [prefix]",
		Short: "Print every stored key under prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := txstore.TxStates
			if len(args) == 1 {
				prefix = args[0]
			}

			kv, err := kvstore.NewFromConfig(opts.cfg.KVStore)
			if err != nil {
				return err
			}
			defer kv.Close()

			pairs, err := kv.List(prefix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range pairs {
				fmt.Fprintf(out, "Key:   %s\n", p.Key)
				fmt.Fprintf(out, "Value: %s\n", string(p.Value))
				fmt.Fprintln(out, "---")
			}
			fmt.Fprintf(out, "\nTotal keys found: %d\n", len(pairs))
			return nil
		},
	}
}

func newStateResetCmd() *cobra.Command {
	var addresses []string

	cmd := &cobra.Command{
		Use:   "reset-cursor",
		Short: "Forget how far an address was read",
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := kvstore.NewFromConfig(opts.cfg.KVStore)
			if err != nil {
				return err
			}
			store := txstore.New(kv)
			defer store.Close()

			for _, addr := range addresses {
				if err := store.ResetCursor(addr); err != nil {
					return fmt.Errorf("reset %s: %w", addr, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cursor reset for %s\n", addr)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&addresses, "address", nil, "Address to reset, repeatable.")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}
