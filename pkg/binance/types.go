package binance

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TxType is the transaction type code reported by the Binance Chain REST API.
type TxType string

const (
	TxTypeNewOrder        TxType = "NEW_ORDER"
	TxTypeIssueToken      TxType = "ISSUE_TOKEN"
	TxTypeBurnToken       TxType = "BURN_TOKEN"
	TxTypeListToken       TxType = "LIST_TOKEN"
	TxTypeCancelOrder     TxType = "CANCEL_ORDER"
	TxTypeFreezeToken     TxType = "FREEZE_TOKEN"
	TxTypeUnfreezeToken   TxType = "UN_FREEZE_TOKEN"
	TxTypeTransfer        TxType = "TRANSFER"
	TxTypeProposal        TxType = "PROPOSAL"
	TxTypeVote            TxType = "VOTE"
	TxTypeMint            TxType = "MINT"
	TxTypeDeposit         TxType = "DEPOSIT"
	TxTypeCreateValidator TxType = "CREATE_VALIDATOR"
	TxTypeRemoveValidator TxType = "REMOVE_VALIDATOR"
	TxTypeTimeLock        TxType = "TIME_LOCK"
	TxTypeTimeUnlock      TxType = "TIME_UNLOCK"
	TxTypeTimeRelock      TxType = "TIME_RELOCK"
	TxTypeSetAccountFlag  TxType = "SET_ACCOUNT_FLAG"
	TxTypeHTLTransfer     TxType = "HTL_TRANSFER"
	TxTypeClaimHTL        TxType = "CLAIM_HTL"
	TxTypeDepositHTL      TxType = "DEPOSIT_HTL"
	TxTypeRefundHTL       TxType = "REFUND_HTL"
)

// Timestamp accepts either unix milliseconds or an RFC3339 string, both of which
// the explorer and dex endpoints emit for "timeStamp".
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		t.Time = time.Time{}
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			t.Time = time.UnixMilli(ms).UTC()
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		t.Time = parsed.UTC()
		return nil
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", raw, err)
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UnixMilli())
}

// Tx is a transaction record as returned by /api/v1/transactions.
type Tx struct {
	TxHash        string          `json:"txHash"`
	BlockHeight   int64           `json:"blockHeight"`
	TxType        TxType          `json:"txType"`
	TimeStamp     Timestamp       `json:"timeStamp"`
	FromAddr      string          `json:"fromAddr"`
	ToAddr        string          `json:"toAddr"`
	Value         decimal.Decimal `json:"value"`
	TxAsset       string          `json:"txAsset"`
	TxFee         decimal.Decimal `json:"txFee"`
	OrderID       string          `json:"orderId,omitempty"`
	Code          int64           `json:"code"`
	Data          string          `json:"data,omitempty"`
	ConfirmBlocks int64           `json:"confirmBlocks"`
	Memo          string          `json:"memo"`
	Source        int64           `json:"source"`
	Sequence      int64           `json:"sequence"`
}

// TxPage is one page of /api/v1/transactions.
type TxPage struct {
	Total int  `json:"total"`
	Tx    []Tx `json:"tx"`
}

// TransferEvent is a message of the "transfers" WebSocket stream.
type TransferEvent struct {
	Stream string    `json:"stream"`
	Data   *Transfer `json:"data,omitempty"`
}

type Transfer struct {
	EventType string           `json:"e"`
	EventTime int64            `json:"E"`
	H         string           `json:"H"`
	M         string           `json:"M"`
	From      string           `json:"f"`
	To        []TransferOutput `json:"t"`
}

type TransferOutput struct {
	Address string          `json:"o"`
	Coins   []TransferCoins `json:"c"`
}

type TransferCoins struct {
	Asset  string          `json:"a"`
	Amount decimal.Decimal `json:"A"`
}
