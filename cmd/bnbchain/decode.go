package main

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fystack/bnbchain-adapter/pkg/binance"
	"github.com/fystack/bnbchain-adapter/pkg/binance/amino"
)

type decodedMsg struct {
	Type  string    `json:"type"`
	Route string    `json:"route"`
	Value amino.Msg `json:"value"`
}

func newDecodeCmd() *cobra.Command {
	var hash string

	cmd := &cobra.Command{
		Use:   "decode [hex|base64]",
		Short: "Decode the messages of a raw transaction",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			switch {
			case hash != "":
				result, err := newClient(opts.cfg.Binance).GetTx(cmd.Context(), hash)
				if err != nil {
					return err
				}
				raw, err = result.Bytes()
				if err != nil {
					return err
				}
			case len(args) == 1:
				raw, err = parseRawTx(args[0])
				if err != nil {
					return err
				}
			default:
				return errors.New("pass a raw tx or --hash")
			}

			msgs, err := binance.DecodeTxMessages(raw)
			if err != nil {
				return fmt.Errorf("decode tx: %w", err)
			}

			out := make([]decodedMsg, 0, len(msgs))
			for _, m := range msgs {
				out = append(out, decodedMsg{Type: m.Type(), Route: m.Route(), Value: m})
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&hash, "hash", "", "Fetch the tx by hash instead of reading it from the argument.")
	return cmd
}

func parseRawTx(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if bz, err := hex.DecodeString(s); err == nil {
		return bz, nil
	}
	bz, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.New("raw tx must be hex or base64")
	}
	return bz, nil
}
