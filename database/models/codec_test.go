package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zilswap/xbridge/types"
)

func TestTransferRoundTrip(t *testing.T) {
	dispatched := time.Date(2024, 11, 2, 9, 30, 0, 0, time.UTC)

	transfer := BridgeTransfer{
		SourceChain:        types.Zilliqa,
		DestinationChain:   types.Ethereum,
		Network:            types.MainNet,
		SourceAddress:      "0x4afc5f9eb3f82a5d5a3908bcf55d517c7fe46cdd",
		DestinationAddress: "0x0d23fc1a21eca27ed56b3a19b0cbe4a47dfc6685",
		SourceToken:        "0xccf3ea256d42aeef0ee0e39bfc94baa9fa14b0ba",
		DestinationToken:   "0x7659ce147d0e714454073a5dd7003544234b6aa0",
		WithdrawFee:        decimal.RequireFromString("12500000000000"),
		InputAmount:        decimal.RequireFromString("120.5"),
		SourceTxHash:       "0x1f0e",
		DispatchedAt:       &dispatched,
	}

	decoded := DecodeTransfer(EncodeTransfer(transfer))
	assert.Equal(t, transfer, decoded)
}

func TestDecodeTransferEmptyNetworkDefaultsTestnet(t *testing.T) {
	decoded := DecodeTransfer(TransferDoc{SourceTxHash: "0x1"})
	assert.Equal(t, types.TestNet, decoded.Network)
}

func TestDecodeTransferClampsBadAmounts(t *testing.T) {
	decoded := DecodeTransfer(TransferDoc{
		WithdrawFee: "not-a-number",
		InputAmount: "-5",
	})

	assert.True(t, decoded.WithdrawFee.IsZero())
	assert.True(t, decoded.InputAmount.IsZero())
}

func TestEncodedTimesSortLexically(t *testing.T) {
	// 0.1s vs 0.15s: variable-width fractions would order these wrong
	earlier := time.Date(2024, 11, 2, 9, 30, 0, 100_000_000, time.UTC)
	later := time.Date(2024, 11, 2, 9, 30, 0, 150_000_000, time.UTC)

	a := EncodeTransfer(BridgeTransfer{DispatchedAt: &earlier})
	b := EncodeTransfer(BridgeTransfer{DispatchedAt: &later})

	assert.Less(t, a.DispatchedAt, b.DispatchedAt)

	decoded := DecodeTransfer(a)
	assert.Equal(t, &earlier, decoded.DispatchedAt)
}

func TestStatusDerivation(t *testing.T) {
	now := time.Now()

	pending := BridgeTransfer{SourceTxHash: "0x1"}
	require.True(t, pending.Pending())
	assert.Equal(t, types.StatusPending, pending.Status())

	complete := BridgeTransfer{SourceTxHash: "0x1", DestinationTxHash: "0x2"}
	require.True(t, complete.Complete())
	assert.Equal(t, types.StatusComplete, complete.Status())

	dismissed := BridgeTransfer{SourceTxHash: "0x1", DismissedAt: &now}
	assert.False(t, dismissed.Pending())
	assert.Equal(t, types.StatusDismissed, dismissed.Status())
}
