package binance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestIsFee(t *testing.T) {
	assert.True(t, IsFee(&FeeParam{MsgType: "send", Fee: ptr(int64(1)), FeeFor: ptr(FeeFor(2))}))
	assert.False(t, IsFee(&FeeParam{MsgType: "send"}))
	assert.False(t, IsFee(&FeeParam{Fee: ptr(int64(1)), FeeFor: ptr(FeeFor(2))}))
	assert.False(t, IsFee(nil))
}

func TestIsFreezeFee(t *testing.T) {
	assert.True(t, IsFreezeFee(&FeeParam{MsgType: "tokensFreeze"}))
	assert.False(t, IsFreezeFee(&FeeParam{MsgType: "send"}))
	assert.False(t, IsFreezeFee(nil))

	// overlaps with IsFee when the other fields are set
	full := &FeeParam{MsgType: "tokensFreeze", Fee: ptr(int64(1000000)), FeeFor: ptr(FeeForProposer)}
	assert.True(t, IsFreezeFee(full))
	assert.True(t, IsFee(full))
}

func TestIsTransferFee(t *testing.T) {
	fixed := &FeeParam{MsgType: "x", Fee: ptr(int64(1)), FeeFor: ptr(FeeFor(2))}

	assert.True(t, IsTransferFee(&FeeParam{FixedFeeParams: fixed, MultiTransferFee: ptr(int64(0))}))
	assert.False(t, IsTransferFee(&FeeParam{FixedFeeParams: fixed}))
	assert.False(t, IsTransferFee(&FeeParam{FixedFeeParams: &FeeParam{MsgType: "x"}, MultiTransferFee: ptr(int64(1))}))
	assert.False(t, IsTransferFee(nil))
}

func TestIsDexFees(t *testing.T) {
	assert.False(t, IsDexFees(&FeeParam{DexFeeFields: []DexFeeField{}}))
	assert.True(t, IsDexFees(&FeeParam{DexFeeFields: []DexFeeField{{FeeName: "ExpireFee", FeeValue: 1000}}}))
	assert.False(t, IsDexFees(nil))
}

const feesResponse = `[
	{"msg_type": "submit_proposal", "fee": 1000000000, "fee_for": 1},
	{"msg_type": "tokensFreeze", "fee": 1000000, "fee_for": 1},
	{"fixed_fee_params": {"msg_type": "send", "fee": 37500, "fee_for": 1}, "multi_transfer_fee": 30000, "lower_limit_as_multi": 2},
	{"dex_fee_fields": [{"fee_name": "ExpireFee", "fee_value": 25000}, {"fee_name": "CancelFee", "fee_value": 25000}]}
]`

func TestClassifyFees(t *testing.T) {
	var params []FeeParam
	require.NoError(t, json.Unmarshal([]byte(feesResponse), &params))

	schedule, err := ClassifyFees(params)
	require.NoError(t, err)
	require.Len(t, schedule, 4)

	assert.Equal(t, Fee{MsgType: "submit_proposal", Fee: 1000000000, FeeFor: FeeForProposer}, schedule[0])
	assert.IsType(t, TransferFee{}, schedule[2])
	assert.IsType(t, DexFees{}, schedule[3])

	freeze, ok := schedule.FreezeFee()
	require.True(t, ok)
	assert.True(t, freeze.IsFreeze())
	assert.Equal(t, int64(1000000), freeze.Fee)

	transfer, ok := schedule.TransferFee()
	require.True(t, ok)
	assert.Equal(t, "send", transfer.FixedFeeParams.MsgType)
	assert.Equal(t, int64(30000), transfer.MultiTransferFee)
	assert.Equal(t, int64(2), transfer.LowerLimitAsMulti)

	dex, ok := schedule.DexFees()
	require.True(t, ok)
	assert.Len(t, dex.DexFeeFields, 2)

	_, ok = schedule.Fee("unknown")
	assert.False(t, ok)
}

func TestClassifyFeeUnknownShape(t *testing.T) {
	_, err := ClassifyFee(&FeeParam{MsgType: "send"})
	assert.ErrorIs(t, err, ErrUnknownFeeShape)

	_, err = ClassifyFees([]FeeParam{{DexFeeFields: []DexFeeField{}}})
	assert.ErrorIs(t, err, ErrUnknownFeeShape)
}
