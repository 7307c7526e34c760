package binance

import (
	"errors"
	"fmt"
)

// FreezeFeeMsgType is the msg_type of the token freeze fee entry.
const FreezeFeeMsgType = "tokensFreeze"

var ErrUnknownFeeShape = errors.New("unknown fee shape")

// FeeFor tells who receives a fee.
type FeeFor int

const (
	FeeForProposer FeeFor = 1
	FeeForAll      FeeFor = 2
	FeeForFree     FeeFor = 3
)

func (f FeeFor) String() string {
	switch f {
	case FeeForProposer:
		return "proposer"
	case FeeForAll:
		return "all"
	case FeeForFree:
		return "free"
	default:
		return fmt.Sprintf("fee_for(%d)", int(f))
	}
}

type DexFeeField struct {
	FeeName  string `json:"fee_name"`
	FeeValue int64  `json:"fee_value"`
}

// FeeParam is one raw entry of /api/v1/fees. The endpoint mixes three shapes in one
// array without a discriminant, so every field is optional and the Is* guards below
// tell the shapes apart.
type FeeParam struct {
	MsgType           string        `json:"msg_type,omitempty"`
	Fee               *int64        `json:"fee,omitempty"`
	FeeFor            *FeeFor       `json:"fee_for,omitempty"`
	FixedFeeParams    *FeeParam     `json:"fixed_fee_params,omitempty"`
	MultiTransferFee  *int64        `json:"multi_transfer_fee,omitempty"`
	LowerLimitAsMulti *int64        `json:"lower_limit_as_multi,omitempty"`
	DexFeeFields      []DexFeeField `json:"dex_fee_fields,omitempty"`
}

// IsFee reports whether v is a simple fee: msg_type, fee and fee_for all set.
func IsFee(v *FeeParam) bool {
	return v != nil && v.MsgType != "" && v.Fee != nil && v.FeeFor != nil
}

// IsFreezeFee only looks at msg_type. A freeze entry with fee and fee_for
// satisfies IsFee as well.
func IsFreezeFee(v *FeeParam) bool {
	return v != nil && v.MsgType == FreezeFeeMsgType
}

// IsTransferFee reports whether v carries fixed fee params plus a multi transfer
// fee. A zero multi transfer fee still counts as present.
func IsTransferFee(v *FeeParam) bool {
	return v != nil && IsFee(v.FixedFeeParams) && v.MultiTransferFee != nil
}

func IsDexFees(v *FeeParam) bool {
	return v != nil && len(v.DexFeeFields) > 0
}

// FeeVariant is the tagged form of a fee entry: Fee, TransferFee or DexFees.
type FeeVariant interface {
	feeVariant()
}

type Fee struct {
	MsgType string `json:"msg_type"`
	Fee     int64  `json:"fee"`
	FeeFor  FeeFor `json:"fee_for"`
}

func (Fee) feeVariant() {}

func (f Fee) IsFreeze() bool {
	return f.MsgType == FreezeFeeMsgType
}

type TransferFee struct {
	FixedFeeParams    Fee   `json:"fixed_fee_params"`
	MultiTransferFee  int64 `json:"multi_transfer_fee"`
	LowerLimitAsMulti int64 `json:"lower_limit_as_multi"`
}

func (TransferFee) feeVariant() {}

type DexFees struct {
	DexFeeFields []DexFeeField `json:"dex_fee_fields"`
}

func (DexFees) feeVariant() {}

func toFee(v *FeeParam) Fee {
	return Fee{MsgType: v.MsgType, Fee: *v.Fee, FeeFor: *v.FeeFor}
}

// ClassifyFee classifies a raw entry once, in the order Fee, TransferFee, DexFees.
func ClassifyFee(v *FeeParam) (FeeVariant, error) {
	switch {
	case IsFee(v):
		return toFee(v), nil
	case IsTransferFee(v):
		tf := TransferFee{
			FixedFeeParams:   toFee(v.FixedFeeParams),
			MultiTransferFee: *v.MultiTransferFee,
		}
		if v.LowerLimitAsMulti != nil {
			tf.LowerLimitAsMulti = *v.LowerLimitAsMulti
		}
		return tf, nil
	case IsDexFees(v):
		fields := make([]DexFeeField, len(v.DexFeeFields))
		copy(fields, v.DexFeeFields)
		return DexFees{DexFeeFields: fields}, nil
	default:
		return nil, ErrUnknownFeeShape
	}
}

// FeeSchedule is a fully classified fee list.
type FeeSchedule []FeeVariant

// ClassifyFees classifies every entry, failing on the first unrecognised shape.
func ClassifyFees(params []FeeParam) (FeeSchedule, error) {
	schedule := make(FeeSchedule, 0, len(params))
	for i := range params {
		variant, err := ClassifyFee(&params[i])
		if err != nil {
			return nil, fmt.Errorf("fee entry %d: %w", i, err)
		}
		schedule = append(schedule, variant)
	}
	return schedule, nil
}

// Fee returns the simple fee registered for msgType.
func (s FeeSchedule) Fee(msgType string) (Fee, bool) {
	for _, v := range s {
		if f, ok := v.(Fee); ok && f.MsgType == msgType {
			return f, true
		}
	}
	return Fee{}, false
}

func (s FeeSchedule) FreezeFee() (Fee, bool) {
	return s.Fee(FreezeFeeMsgType)
}

func (s FeeSchedule) TransferFee() (TransferFee, bool) {
	for _, v := range s {
		if tf, ok := v.(TransferFee); ok {
			return tf, true
		}
	}
	return TransferFee{}, false
}

func (s FeeSchedule) DexFees() (DexFees, bool) {
	for _, v := range s {
		if d, ok := v.(DexFees); ok {
			return d, true
		}
	}
	return DexFees{}, false
}
