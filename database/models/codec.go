package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zilswap/xbridge/types"
)

// TimeLayout is the persisted timestamp form: RFC3339 with fixed-width
// fractional seconds, so encoded strings sort lexically in time order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// TransferDoc is the persisted form of a BridgeTransfer. Decimals are stored
// as base-10 strings and timestamps as fixed-width RFC3339 strings so
// documents sort and round-trip without precision loss.
type TransferDoc struct {
	SourceChain      string `bson:"src_chain" json:"src_chain"`
	DestinationChain string `bson:"dst_chain" json:"dst_chain"`

	Network string `bson:"network" json:"network"`

	SourceAddress      string `bson:"src_addr" json:"src_addr"`
	DestinationAddress string `bson:"dst_addr" json:"dst_addr"`

	SourceToken      string `bson:"src_token" json:"src_token"`
	DestinationToken string `bson:"dst_token" json:"dst_token"`

	WithdrawFee string `bson:"withdraw_fee" json:"withdraw_fee"`
	InputAmount string `bson:"input_amount" json:"input_amount"`

	ApprovalTxHash string `bson:"approval_tx_hash,omitempty" json:"approval_tx_hash,omitempty"`
	SourceTxHash   string `bson:"source_tx_hash" json:"source_tx_hash"`

	DepositConfirmedAt     string `bson:"deposit_confirmed_at,omitempty" json:"deposit_confirmed_at,omitempty"`
	DestinationTxHash      string `bson:"destination_tx_hash,omitempty" json:"destination_tx_hash,omitempty"`
	DestinationConfirmedAt string `bson:"destination_confirmed_at,omitempty" json:"destination_confirmed_at,omitempty"`
	DismissedAt            string `bson:"dismissed_at,omitempty" json:"dismissed_at,omitempty"`
	DispatchedAt           string `bson:"dispatched_at,omitempty" json:"dispatched_at,omitempty"`

	SourceConfirmations uint64 `bson:"source_confirmations,omitempty" json:"source_confirmations,omitempty"`

	Recovered bool `bson:"recovered,omitempty" json:"recovered,omitempty"`
}

// EncodeTransfer converts a transfer to its persisted form.
func EncodeTransfer(t BridgeTransfer) TransferDoc {
	return TransferDoc{
		SourceChain:            string(t.SourceChain),
		DestinationChain:       string(t.DestinationChain),
		Network:                string(t.Network),
		SourceAddress:          t.SourceAddress,
		DestinationAddress:     t.DestinationAddress,
		SourceToken:            t.SourceToken,
		DestinationToken:       t.DestinationToken,
		WithdrawFee:            t.WithdrawFee.String(),
		InputAmount:            t.InputAmount.String(),
		ApprovalTxHash:         t.ApprovalTxHash,
		SourceTxHash:           t.SourceTxHash,
		DepositConfirmedAt:     encodeTime(t.DepositConfirmedAt),
		DestinationTxHash:      t.DestinationTxHash,
		DestinationConfirmedAt: encodeTime(t.DestinationConfirmedAt),
		DismissedAt:            encodeTime(t.DismissedAt),
		DispatchedAt:           encodeTime(t.DispatchedAt),
		SourceConfirmations:    t.SourceConfirmations,
		Recovered:              t.Recovered,
	}
}

// DecodeTransfer is the exact inverse of EncodeTransfer. Missing optional
// fields decode to absent; malformed decimals decode to zero so one bad
// record cannot poison a load.
func DecodeTransfer(d TransferDoc) BridgeTransfer {
	network := types.Network(d.Network)
	if network == "" {
		network = types.TestNet
	}
	return BridgeTransfer{
		SourceChain:            types.Blockchain(d.SourceChain),
		DestinationChain:       types.Blockchain(d.DestinationChain),
		Network:                network,
		SourceAddress:          d.SourceAddress,
		DestinationAddress:     d.DestinationAddress,
		SourceToken:            d.SourceToken,
		DestinationToken:       d.DestinationToken,
		WithdrawFee:            decimalOrZero(d.WithdrawFee),
		InputAmount:            decimalOrZero(d.InputAmount),
		ApprovalTxHash:         d.ApprovalTxHash,
		SourceTxHash:           d.SourceTxHash,
		DepositConfirmedAt:     decodeTime(d.DepositConfirmedAt),
		DestinationTxHash:      d.DestinationTxHash,
		DestinationConfirmedAt: decodeTime(d.DestinationConfirmedAt),
		DismissedAt:            decodeTime(d.DismissedAt),
		DispatchedAt:           decodeTime(d.DispatchedAt),
		SourceConfirmations:    d.SourceConfirmations,
		Recovered:              d.Recovered,
	}
}

func encodeTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}

func decodeTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}

// decimalOrZero clamps unparseable or negative values to zero. Fees and
// amounts are invariantly non-negative.
func decimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
