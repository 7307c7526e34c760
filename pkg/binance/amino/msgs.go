package amino

// Msg is a decoded Binance Chain message.
type Msg interface {
	Route() string
	Type() string
}

type Coin struct {
	Denom  string `json:"denom"`
	Amount int64  `json:"amount"`
}

// IO is one side of a SendMsg: an address and the coins it sends or receives.
type IO struct {
	Address AccAddress `json:"address"`
	Coins   []Coin     `json:"coins"`
}

type (
	Input  = IO
	Output = IO
)

// SendMsg moves coins between one or more inputs and outputs.
type SendMsg struct {
	Inputs  []Input  `json:"inputs"`
	Outputs []Output `json:"outputs"`
}

func (m *SendMsg) Route() string { return "bank" }
func (m *SendMsg) Type() string  { return "send" }

type NewOrderMsg struct {
	Sender      AccAddress `json:"sender"`
	ID          string     `json:"id"`
	Symbol      string     `json:"symbol"`
	OrderType   int64      `json:"ordertype"`
	Side        int64      `json:"side"`
	Price       int64      `json:"price"`
	Quantity    int64      `json:"quantity"`
	TimeInForce int64      `json:"timeinforce"`
}

func (m *NewOrderMsg) Route() string { return "orders" }
func (m *NewOrderMsg) Type() string  { return "orderNew" }

type CancelOrderMsg struct {
	Sender AccAddress `json:"sender"`
	Symbol string     `json:"symbol"`
	RefID  string     `json:"refid"`
}

func (m *CancelOrderMsg) Route() string { return "orders" }
func (m *CancelOrderMsg) Type() string  { return "orderCancel" }

type IssueMsg struct {
	From        AccAddress `json:"from"`
	Name        string     `json:"name"`
	Symbol      string     `json:"symbol"`
	TotalSupply int64      `json:"total_supply"`
	Mintable    bool       `json:"mintable"`
}

func (m *IssueMsg) Route() string { return "tokensIssue" }
func (m *IssueMsg) Type() string  { return "issueMsg" }

// Burn, freeze, unfreeze and mint share the from/symbol/amount body. The fields are
// spelled out per type since amino encodes an embedded struct as a nested field.

type BurnMsg struct {
	From   AccAddress `json:"from"`
	Symbol string     `json:"symbol"`
	Amount int64      `json:"amount"`
}

func (m *BurnMsg) Route() string { return "tokensBurn" }
func (m *BurnMsg) Type() string  { return "tokensBurn" }

type FreezeMsg struct {
	From   AccAddress `json:"from"`
	Symbol string     `json:"symbol"`
	Amount int64      `json:"amount"`
}

func (m *FreezeMsg) Route() string { return "tokensFreeze" }
func (m *FreezeMsg) Type() string  { return "tokensFreeze" }

type UnfreezeMsg struct {
	From   AccAddress `json:"from"`
	Symbol string     `json:"symbol"`
	Amount int64      `json:"amount"`
}

func (m *UnfreezeMsg) Route() string { return "tokensFreeze" }
func (m *UnfreezeMsg) Type() string  { return "tokensUnfreeze" }

type MintMsg struct {
	From   AccAddress `json:"from"`
	Symbol string     `json:"symbol"`
	Amount int64      `json:"amount"`
}

func (m *MintMsg) Route() string { return "tokensIssue" }
func (m *MintMsg) Type() string  { return "mintMsg" }
