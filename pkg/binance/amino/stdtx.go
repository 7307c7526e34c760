package amino

import (
	"errors"
	"fmt"
)

// PubKey is the public key carried by a signature.
type PubKey interface {
	Bytes() []byte
}

// PubKeySecp256k1 is a compressed secp256k1 public key.
type PubKeySecp256k1 [33]byte

func (pk PubKeySecp256k1) Bytes() []byte {
	return pk[:]
}

type StdSignature struct {
	PubKey        PubKey `json:"pub_key"`
	Signature     []byte `json:"signature"`
	AccountNumber int64  `json:"account_number"`
	Sequence      int64  `json:"sequence"`
}

// StdTx is the signed transaction envelope broadcast on Binance Chain.
type StdTx struct {
	Msgs       []Msg          `json:"msg"`
	Signatures []StdSignature `json:"signatures"`
	Memo       string         `json:"memo"`
	Source     int64          `json:"source"`
	Data       []byte         `json:"data"`
}

// NewStdTx builds the decoding envelope for a message type: one default message and
// one empty signature. Every message in the payload must be of the template's type.
func NewStdTx(t MsgType) *StdTx {
	return &StdTx{
		Msgs: []Msg{t.DefaultMsg()},
		Signatures: []StdSignature{{
			Signature: []byte{},
		}},
	}
}

func templateType(tx *StdTx) (MsgType, error) {
	if tx == nil || len(tx.Msgs) == 0 || tx.Msgs[0] == nil {
		return MsgType{}, errors.New("amino: envelope has no template message")
	}
	for _, t := range registry {
		if t.is(tx.Msgs[0]) {
			return t, nil
		}
	}
	return MsgType{}, fmt.Errorf("%w: template %T", ErrUnknownPrefix, tx.Msgs[0])
}

// UnmarshalBinaryLengthPrefixed decodes bz into tx. Trailing bytes past the length
// prefix are rejected by the codec.
func UnmarshalBinaryLengthPrefixed(bz []byte, tx *StdTx) error {
	msgType, err := templateType(tx)
	if err != nil {
		return err
	}

	var decoded StdTx
	if err := cdc.UnmarshalBinaryLengthPrefixed(bz, &decoded); err != nil {
		return err
	}
	for _, msg := range decoded.Msgs {
		if !msgType.is(msg) {
			return fmt.Errorf("%w: want %s, got %T", ErrPrefixMismatch, msgType.Name, msg)
		}
	}

	*tx = decoded
	return nil
}

func MarshalBinaryLengthPrefixed(tx *StdTx) ([]byte, error) {
	return cdc.MarshalBinaryLengthPrefixed(tx)
}
