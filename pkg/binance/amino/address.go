package amino

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/btcsuite/btcutil/bech32"
)

const (
	MainnetHRP = "bnb"
	TestnetHRP = "tbnb"
)

var bech32Prefix atomic.Value

func init() {
	bech32Prefix.Store(MainnetHRP)
}

// SetBech32Prefix selects the human readable part used when addresses are rendered.
func SetBech32Prefix(hrp string) {
	bech32Prefix.Store(hrp)
}

func Bech32Prefix() string {
	return bech32Prefix.Load().(string)
}

// AccAddress is the raw 20 byte account address carried inside messages.
type AccAddress []byte

func (a AccAddress) Bech32(hrp string) (string, error) {
	if len(a) == 0 {
		return "", nil
	}
	conv, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert address bits: %w", err)
	}
	return bech32.Encode(hrp, conv)
}

func (a AccAddress) String() string {
	s, err := a.Bech32(Bech32Prefix())
	if err != nil {
		return fmt.Sprintf("%X", []byte(a))
	}
	return s
}

func (a AccAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *AccAddress) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = nil
		return nil
	}
	addr, err := AccAddressFromBech32(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

func AccAddressFromBech32(s string) (AccAddress, error) {
	_, data, err := bech32.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid bech32 address %q: %w", s, err)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("invalid bech32 address %q: %w", s, err)
	}
	return AccAddress(raw), nil
}
