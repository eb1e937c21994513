package database

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/zilswap/xbridge/database/models"
	"github.com/zilswap/xbridge/types"
	"go.mongodb.org/mongo-driver/bson"
)

func setKeys(set bson.D) []string {
	keys := make([]string, 0, len(set))
	for _, e := range set {
		keys = append(keys, e.Key)
	}
	return keys
}

func TestUpdateFieldsOmitsAbsentFields(t *testing.T) {
	now := time.Now()

	// a watcher completion update carries only its own fields
	doc := models.EncodeTransfer(models.BridgeTransfer{
		Network:                types.MainNet,
		SourceTxHash:           "0xaaa",
		DestinationTxHash:      "0xbbb",
		DestinationConfirmedAt: &now,
	})

	keys := setKeys(updateFields(doc))

	assert.Contains(t, keys, "source_tx_hash")
	assert.Contains(t, keys, "destination_tx_hash")
	assert.Contains(t, keys, "destination_confirmed_at")

	// a stale snapshot must not clobber fields another writer set
	assert.NotContains(t, keys, "dismissed_at")
	assert.NotContains(t, keys, "withdraw_fee")
	assert.NotContains(t, keys, "input_amount")
	assert.NotContains(t, keys, "src_addr")
	assert.NotContains(t, keys, "dst_addr")
	assert.NotContains(t, keys, "approval_tx_hash")
	assert.NotContains(t, keys, "recovered")
	assert.NotContains(t, keys, "source_confirmations")
}

func TestUpdateFieldsIncludesPresentFields(t *testing.T) {
	now := time.Now()

	doc := models.EncodeTransfer(models.BridgeTransfer{
		SourceChain:         types.Zilliqa,
		DestinationChain:    types.Ethereum,
		Network:             types.MainNet,
		SourceAddress:       "0xdead",
		DestinationAddress:  "0xbeef",
		WithdrawFee:         decimal.NewFromInt(7),
		InputAmount:         decimal.RequireFromString("1.5"),
		SourceTxHash:        "0xaaa",
		DispatchedAt:        &now,
		SourceConfirmations: 3,
		Recovered:           true,
	})

	keys := setKeys(updateFields(doc))

	for _, key := range []string{
		"source_tx_hash", "src_chain", "dst_chain", "network",
		"src_addr", "dst_addr", "withdraw_fee", "input_amount",
		"dispatched_at", "source_confirmations", "recovered",
	} {
		assert.Contains(t, keys, key)
	}
}

func TestUpdateFieldsSkipsConflictingKeys(t *testing.T) {
	doc := models.EncodeTransfer(models.BridgeTransfer{
		SourceTxHash:      "0xaaa",
		DestinationTxHash: "0xccc",
	})

	keys := setKeys(updateFields(doc, "destination_tx_hash"))

	assert.Contains(t, keys, "source_tx_hash")
	assert.NotContains(t, keys, "destination_tx_hash")
}
