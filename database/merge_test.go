package database

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/zilswap/xbridge/database/models"
	"github.com/zilswap/xbridge/types"
)

func TestMergeTransferIncomingWins(t *testing.T) {
	now := time.Now()

	existing := models.BridgeTransfer{
		SourceChain:      types.Zilliqa,
		DestinationChain: types.Ethereum,
		Network:          types.MainNet,
		SourceTxHash:     "0xaaa",
		InputAmount:      decimal.NewFromInt(1),
	}
	incoming := models.BridgeTransfer{
		SourceTxHash:           "0xaaa",
		DestinationTxHash:      "0xbbb",
		DestinationConfirmedAt: &now,
		InputAmount:            decimal.NewFromInt(2),
	}

	merged, conflicts := MergeTransfer(existing, incoming)

	assert.Empty(t, conflicts)
	assert.Equal(t, "0xbbb", merged.DestinationTxHash)
	assert.Equal(t, &now, merged.DestinationConfirmedAt)
	assert.True(t, merged.InputAmount.Equal(decimal.NewFromInt(2)))
	// untouched fields survive
	assert.Equal(t, types.Zilliqa, merged.SourceChain)
	assert.Equal(t, types.MainNet, merged.Network)
}

func TestMergeTransferZeroFieldsDoNotClobber(t *testing.T) {
	existing := models.BridgeTransfer{
		SourceTxHash:       "0xaaa",
		SourceAddress:      "0xdead",
		DestinationAddress: "0xbeef",
		WithdrawFee:        decimal.NewFromInt(7),
	}

	merged, conflicts := MergeTransfer(existing, models.BridgeTransfer{SourceTxHash: "0xaaa"})

	assert.Empty(t, conflicts)
	assert.Equal(t, existing, merged)
}

func TestMergeTransferTxHashesImmutable(t *testing.T) {
	existing := models.BridgeTransfer{
		SourceTxHash:      "0xaaa",
		DestinationTxHash: "0xbbb",
	}
	incoming := models.BridgeTransfer{
		SourceTxHash:      "0xccc",
		DestinationTxHash: "0xddd",
	}

	merged, conflicts := MergeTransfer(existing, incoming)

	assert.Equal(t, "0xaaa", merged.SourceTxHash)
	assert.Equal(t, "0xbbb", merged.DestinationTxHash)
	assert.ElementsMatch(t, []string{"source_tx_hash", "destination_tx_hash"}, conflicts)
}

func TestMergeTransferRecoveredSticky(t *testing.T) {
	existing := models.BridgeTransfer{SourceTxHash: "0xaaa", Recovered: true}

	merged, _ := MergeTransfer(existing, models.BridgeTransfer{SourceTxHash: "0xaaa"})
	assert.True(t, merged.Recovered)

	merged, _ = MergeTransfer(models.BridgeTransfer{SourceTxHash: "0xaaa"}, existing)
	assert.True(t, merged.Recovered)
}
