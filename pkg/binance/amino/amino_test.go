package amino

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress(fill byte) AccAddress {
	return AccAddress(bytes.Repeat([]byte{fill}, 20))
}

func testPubKey(fill byte) PubKeySecp256k1 {
	var pk PubKeySecp256k1
	copy(pk[:], bytes.Repeat([]byte{fill}, len(pk)))
	return pk
}

func sampleSendTx() *StdTx {
	return &StdTx{
		Msgs: []Msg{&SendMsg{
			Inputs:  []Input{{Address: testAddress(0x01), Coins: []Coin{{Denom: "BNB", Amount: 150000000}}}},
			Outputs: []Output{{Address: testAddress(0x02), Coins: []Coin{{Denom: "BNB", Amount: 150000000}}}},
		}},
		Signatures: []StdSignature{{
			PubKey:        testPubKey(0x03),
			Signature:     bytes.Repeat([]byte{0x04}, 64),
			AccountNumber: 12,
			Sequence:      7,
		}},
		Memo:   "swap:deadbeef",
		Source: 1,
	}
}

func TestStdTxRoundTrip(t *testing.T) {
	bz, err := MarshalBinaryLengthPrefixed(sampleSendTx())
	require.NoError(t, err)

	sendType, err := Lookup(PrefixSend)
	require.NoError(t, err)

	tx := NewStdTx(sendType)
	require.NoError(t, UnmarshalBinaryLengthPrefixed(bz, tx))

	require.Len(t, tx.Msgs, 1)
	send, ok := tx.Msgs[0].(*SendMsg)
	require.True(t, ok)
	assert.Equal(t, testAddress(0x01), send.Inputs[0].Address)
	assert.Equal(t, []Coin{{Denom: "BNB", Amount: 150000000}}, send.Outputs[0].Coins)

	require.Len(t, tx.Signatures, 1)
	assert.Equal(t, int64(12), tx.Signatures[0].AccountNumber)
	assert.Equal(t, int64(7), tx.Signatures[0].Sequence)
	assert.Equal(t, testPubKey(0x03), tx.Signatures[0].PubKey)
	assert.Equal(t, "swap:deadbeef", tx.Memo)
	assert.Equal(t, int64(1), tx.Source)
}

func TestStdTxMessagePrefixSitsAtOffsetEight(t *testing.T) {
	bz, err := MarshalBinaryLengthPrefixed(sampleSendTx())
	require.NoError(t, err)
	require.Greater(t, len(bz), 12)

	assert.Equal(t, PrefixStdTx.Bytes(), bz[2:6])
	assert.Equal(t, PrefixSend.Bytes(), bz[8:12])
}

func TestUnmarshalRejectsTemplateMismatch(t *testing.T) {
	bz, err := MarshalBinaryLengthPrefixed(sampleSendTx())
	require.NoError(t, err)

	freezeType, err := Lookup(PrefixFreeze)
	require.NoError(t, err)

	err = UnmarshalBinaryLengthPrefixed(bz, NewStdTx(freezeType))
	assert.ErrorIs(t, err, ErrPrefixMismatch)
}

func TestUnmarshalRejectsTruncatedPayload(t *testing.T) {
	bz, err := MarshalBinaryLengthPrefixed(sampleSendTx())
	require.NoError(t, err)

	sendType, _ := Lookup(PrefixSend)
	tx := NewStdTx(sendType)
	err = UnmarshalBinaryLengthPrefixed(bz[:len(bz)-10], tx)
	require.Error(t, err)
	assert.IsType(t, &SendMsg{}, tx.Msgs[0])
}

func TestUnmarshalRejectsTrailingBytes(t *testing.T) {
	bz, err := MarshalBinaryLengthPrefixed(sampleSendTx())
	require.NoError(t, err)

	sendType, _ := Lookup(PrefixSend)
	err = UnmarshalBinaryLengthPrefixed(append(bz, 0x00, 0x01), NewStdTx(sendType))
	assert.Error(t, err)
}

func TestTokenMsgRoundTrip(t *testing.T) {
	freeze := &FreezeMsg{From: testAddress(0x05), Symbol: "BUSD-BD1", Amount: 42}
	bz, err := Codec().MarshalBinaryBare(freeze)
	require.NoError(t, err)
	assert.Equal(t, PrefixFreeze.Bytes(), bz[:PrefixLen])

	var decoded Msg
	require.NoError(t, Codec().UnmarshalBinaryBare(bz, &decoded))
	assert.Equal(t, freeze, decoded)
	assert.Equal(t, "tokensFreeze", decoded.Type())
}

func TestDerivedPrefixes(t *testing.T) {
	for name, want := range map[string]string{
		NameStdTx:           "F0625DEE",
		NamePubKeySecp256k1: "EB5AE987",
		NameSend:            "2A2C87FA",
		NameNewOrder:        "CE6DC043",
		NameCancelOrder:     "166E681B",
		NameIssue:           "17EFAB80",
		NameBurn:            "7ED2D2A0",
		NameFreeze:          "E774B32D",
		NameUnfreeze:        "6515FF0D",
		NameMint:            "467E0829",
	} {
		assert.Equal(t, want, PrefixOf(name).String(), name)
	}
}

func TestLookup(t *testing.T) {
	msgType, err := LookupHex("2a2c87fa")
	require.NoError(t, err)
	assert.Equal(t, "cosmos-sdk/Send", msgType.Name)
	assert.IsType(t, &SendMsg{}, msgType.DefaultMsg())

	_, err = LookupHex("deadbeef")
	assert.ErrorIs(t, err, ErrUnknownPrefix)

	_, err = LookupHex("zz")
	assert.ErrorIs(t, err, ErrUnknownPrefix)

	assert.Len(t, MsgTypes(), 8)
}

func TestAccAddressBech32(t *testing.T) {
	addr := testAddress(0x01)
	encoded, err := addr.Bech32(MainnetHRP)
	require.NoError(t, err)
	assert.Contains(t, encoded, "bnb1")

	decoded, err := AccAddressFromBech32(encoded)
	require.NoError(t, err)
	assert.Equal(t, addr, decoded)

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+encoded+`"`, string(raw))
}
