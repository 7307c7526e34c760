package binance

import (
	"fmt"

	"github.com/fystack/bnbchain-adapter/pkg/binance/amino"
)

// msgPrefixOffset is where the first message's type prefix sits in a broadcast tx:
// 2 bytes of length prefix, the 4 byte StdTx prefix, a field tag and the message length.
const msgPrefixOffset = 8

// DecodeTxMessages decodes length-prefixed StdTx bytes and returns its messages.
// Decoder errors are returned as is.
func DecodeTxMessages(txBytes []byte) ([]amino.Msg, error) {
	if len(txBytes) < msgPrefixOffset+amino.PrefixLen {
		return nil, fmt.Errorf("%w: tx is %d bytes", amino.ErrShortBuffer, len(txBytes))
	}

	var prefix amino.Prefix
	copy(prefix[:], txBytes[msgPrefixOffset:msgPrefixOffset+amino.PrefixLen])
	msgType, err := amino.Lookup(prefix)
	if err != nil {
		return nil, err
	}

	tx := amino.NewStdTx(msgType)
	if err := amino.UnmarshalBinaryLengthPrefixed(txBytes, tx); err != nil {
		return nil, err
	}
	return tx.Msgs, nil
}
