package types

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TxType is the chain-agnostic transaction kind.
type TxType string

const (
	TxTypeTransfer TxType = "transfer"
	TxTypeFreeze   TxType = "freeze"
	TxTypeUnfreeze TxType = "unfreeze"
	TxTypeUnknown  TxType = "unknown"
)

type TxFrom struct {
	From   string     `json:"from"`
	Amount BaseAmount `json:"amount"`
}

type TxTo struct {
	To     string     `json:"to"`
	Amount BaseAmount `json:"amount"`
}

// Tx is the normalized transaction shared by every chain adapter.
type Tx struct {
	Asset Asset     `json:"asset"`
	From  []TxFrom  `json:"from"`
	To    []TxTo    `json:"to"`
	Date  time.Time `json:"date"`
	Type  TxType    `json:"type"`
	Hash  string    `json:"hash"`
}

func (t Tx) MarshalBinary() ([]byte, error) {
	return json.Marshal(t)
}

func (t *Tx) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, t)
}

func (t Tx) String() string {
	return fmt.Sprintf(
		"{Hash: %s, Asset: %s, Type: %s, From: %d, To: %d, Date: %s}",
		t.Hash,
		t.Asset,
		t.Type,
		len(t.From),
		len(t.To),
		t.Date.UTC().Format(time.RFC3339),
	)
}

// IdempotencyKey combines the asset, chain hash and sides into a deterministic key
// so a tx re-read from an overlapping page is published once.
func (t Tx) IdempotencyKey() string {
	var builder strings.Builder
	builder.WriteString(t.Asset.String())
	builder.WriteByte('|')
	builder.WriteString(t.Hash)
	for _, f := range t.From {
		builder.WriteByte('|')
		builder.WriteString(f.From)
	}
	for _, to := range t.To {
		builder.WriteByte('|')
		builder.WriteString(to.To)
	}
	hash := sha256.Sum256([]byte(builder.String()))
	return fmt.Sprintf("%x", hash)
}
