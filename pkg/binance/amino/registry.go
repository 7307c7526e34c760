package amino

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	goamino "github.com/tendermint/go-amino"
)

var (
	ErrShortBuffer    = errors.New("amino: buffer too short")
	ErrPrefixMismatch = errors.New("amino: type prefix mismatch")
	ErrUnknownPrefix  = errors.New("amino: unknown type prefix")
)

// Registered names of the Binance Chain wire types.
const (
	NameStdTx           = "auth/StdTx"
	NamePubKeySecp256k1 = "tendermint/PubKeySecp256k1"
	NameSend            = "cosmos-sdk/Send"
	NameNewOrder        = "dex/NewOrder"
	NameCancelOrder     = "dex/CancelOrder"
	NameIssue           = "tokens/IssueMsg"
	NameBurn            = "tokens/BurnMsg"
	NameFreeze          = "tokens/FreezeMsg"
	NameUnfreeze        = "tokens/UnfreezeMsg"
	NameMint            = "tokens/MintMsg"
)

var (
	PrefixStdTx           = PrefixOf(NameStdTx)
	PrefixPubKeySecp256k1 = PrefixOf(NamePubKeySecp256k1)
	PrefixSend            = PrefixOf(NameSend)
	PrefixNewOrder        = PrefixOf(NameNewOrder)
	PrefixCancelOrder     = PrefixOf(NameCancelOrder)
	PrefixIssue           = PrefixOf(NameIssue)
	PrefixBurn            = PrefixOf(NameBurn)
	PrefixFreeze          = PrefixOf(NameFreeze)
	PrefixUnfreeze        = PrefixOf(NameUnfreeze)
	PrefixMint            = PrefixOf(NameMint)
)

// MsgType describes a registered message: its amino name, prefix and constructor.
type MsgType struct {
	Name   string
	Prefix Prefix
	New    func() Msg
}

// DefaultMsg returns a zero valued message of the type.
func (t MsgType) DefaultMsg() Msg {
	return t.New()
}

func (t MsgType) is(msg Msg) bool {
	return reflect.TypeOf(msg) == reflect.TypeOf(t.New())
}

var (
	cdc      = goamino.NewCodec()
	registry = map[Prefix]MsgType{}
)

func register(name string, newMsg func() Msg) {
	prefix := PrefixOf(name)
	if existing, ok := registry[prefix]; ok {
		panic(fmt.Sprintf("amino: prefix %s registered twice (%s, %s)", prefix, existing.Name, name))
	}
	cdc.RegisterConcrete(newMsg(), name, nil)
	registry[prefix] = MsgType{Name: name, Prefix: prefix, New: newMsg}
}

func init() {
	cdc.RegisterInterface((*Msg)(nil), nil)
	register(NameSend, func() Msg { return &SendMsg{} })
	register(NameNewOrder, func() Msg { return &NewOrderMsg{} })
	register(NameCancelOrder, func() Msg { return &CancelOrderMsg{} })
	register(NameIssue, func() Msg { return &IssueMsg{} })
	register(NameBurn, func() Msg { return &BurnMsg{} })
	register(NameFreeze, func() Msg { return &FreezeMsg{} })
	register(NameUnfreeze, func() Msg { return &UnfreezeMsg{} })
	register(NameMint, func() Msg { return &MintMsg{} })

	cdc.RegisterInterface((*PubKey)(nil), nil)
	cdc.RegisterConcrete(PubKeySecp256k1{}, NamePubKeySecp256k1, nil)
	cdc.RegisterConcrete(&StdTx{}, NameStdTx, nil)
	cdc.Seal()
}

// Codec returns the sealed codec holding every Binance Chain type above.
func Codec() *goamino.Codec {
	return cdc
}

func Lookup(prefix Prefix) (MsgType, error) {
	t, ok := registry[prefix]
	if !ok {
		return MsgType{}, fmt.Errorf("%w: %s", ErrUnknownPrefix, prefix)
	}
	return t, nil
}

// LookupHex resolves a hex encoded prefix such as "2a2c87fa".
func LookupHex(s string) (MsgType, error) {
	prefix, err := ParsePrefix(s)
	if err != nil {
		return MsgType{}, fmt.Errorf("%w: %w", ErrUnknownPrefix, err)
	}
	return Lookup(prefix)
}

// MsgTypes lists the registered message types ordered by name.
func MsgTypes() []MsgType {
	out := make([]MsgType, 0, len(registry))
	for _, t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
