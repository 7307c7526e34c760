package amino

import (
	"encoding/hex"
	"fmt"
	"strings"

	goamino "github.com/tendermint/go-amino"
)

// PrefixLen is the width of an amino type prefix.
const PrefixLen = goamino.PrefixBytesLen

// Prefix identifies the concrete type of an amino encoded value.
type Prefix [PrefixLen]byte

// PrefixOf derives the type prefix amino assigns to a registered name.
func PrefixOf(name string) Prefix {
	_, pb := goamino.NameToDisfix(name)
	return Prefix(pb)
}

func (p Prefix) String() string {
	return strings.ToUpper(hex.EncodeToString(p[:]))
}

func (p Prefix) Bytes() []byte {
	return p[:]
}

func ParsePrefix(s string) (Prefix, error) {
	var p Prefix
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(s), "0x"))
	if err != nil {
		return p, fmt.Errorf("invalid amino prefix %q: %w", s, err)
	}
	if len(raw) != PrefixLen {
		return p, fmt.Errorf("invalid amino prefix %q: want %d bytes, got %d", s, PrefixLen, len(raw))
	}
	copy(p[:], raw)
	return p, nil
}
