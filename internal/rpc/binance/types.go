package binance

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/fystack/bnbchain-adapter/pkg/binance"
)

// TxQuery filters /api/v1/transactions. Zero fields are not sent.
type TxQuery struct {
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
	TxType    binance.TxType
	TxAsset   string
	Side      string // "RECEIVE" or "SEND"
}

// TxResult is the /api/v1/tx/{hash} response.
type TxResult struct {
	Hash   string `json:"hash"`
	Height string `json:"height"`
	Code   int64  `json:"code"`
	Log    string `json:"log"`
	OK     bool   `json:"ok"`
	Tx     string `json:"tx"`
}

// Bytes returns the raw amino tx. Nodes report it hex encoded, some gateways base64.
func (r *TxResult) Bytes() ([]byte, error) {
	s := strings.TrimPrefix(strings.TrimSpace(r.Tx), "0x")
	if s == "" {
		return nil, fmt.Errorf("tx %s has no body", r.Hash)
	}
	if bz, err := hex.DecodeString(s); err == nil {
		return bz, nil
	}
	bz, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("tx %s body is neither hex nor base64", r.Hash)
	}
	return bz, nil
}

// APIError is the JSON error body returned by the REST API.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance api error %d: %s", e.Code, e.Message)
}
