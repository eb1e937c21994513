package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zilswap/xbridge/history"
	"github.com/zilswap/xbridge/types"
)

var testMnemonic = strings.Fields(
	"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about")

func newHistoryServer(t *testing.T, transfers []history.Transfer, requests *int, accounts *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		*accounts = append(*accounts, r.URL.Query().Get("account"))
		require.Equal(t, "/transfers", r.URL.Path)
		require.NoError(t, json.NewEncoder(w).Encode(transfers))
	}))
}

func TestRecoverReconstructsStuckDeposit(t *testing.T) {
	var requests int
	var accounts []string

	server := newHistoryServer(t, []history.Transfer{
		// withdrawals and failures are skipped
		{TransferType: "withdrawal", Status: "success", Blockchain: "eth", Denom: "zil", Amount: "5"},
		{TransferType: "deposit", Status: "failed", Blockchain: "zil", Denom: "zil", Amount: "7"},
		{
			TransferType: "deposit",
			Status:       "success",
			Blockchain:   "zil",
			Denom:        "zil",
			Amount:       "100.5",
			FeeAmount:    "2",
			Timestamp:    "2024-11-02T09:30:00Z",
		},
	}, &requests, &accounts)
	defer server.Close()

	recovery := NewRecovery(RecoveryOpts{
		Network: types.MainNet,
		History: history.NewClient(history.ClientOpts{BaseURL: server.URL}),
	})

	record, err := recovery.Recover(context.Background(), testMnemonic, "")
	require.NoError(t, err)

	require.Equal(t, 1, requests)
	require.Len(t, accounts, 1)
	assert.True(t, strings.HasPrefix(accounts[0], "swth1"), "derived account %q", accounts[0])

	assert.Equal(t, types.Zilliqa, record.SourceChain)
	assert.Equal(t, types.Ethereum, record.DestinationChain)
	assert.Equal(t, types.MainNet, record.Network)
	assert.True(t, record.InputAmount.Equal(decimal.RequireFromString("100.5")))
	assert.True(t, record.WithdrawFee.Equal(decimal.NewFromInt(2)))
	assert.True(t, record.Recovered)
	assert.NotNil(t, record.DepositConfirmedAt)

	// denom resolves to the wrapped token on the destination chain
	assert.Equal(t, "0x6eeb539d662bb971a4a01211c67cb7f65b09b802", record.DestinationToken)

	// synthetic hash is stable, so re-running recovery merges onto itself
	require.NotEmpty(t, record.SourceTxHash)
	again, err := recovery.Recover(context.Background(), testMnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, record.SourceTxHash, again.SourceTxHash)
}

func TestRecoverSetsDestinationAddress(t *testing.T) {
	var requests int
	var accounts []string

	server := newHistoryServer(t, []history.Transfer{
		{TransferType: "deposit", Status: "success", Blockchain: "zil", Denom: "zil", Amount: "3"},
	}, &requests, &accounts)
	defer server.Close()

	recovery := NewRecovery(RecoveryOpts{
		Network: types.MainNet,
		History: history.NewClient(history.ClientOpts{BaseURL: server.URL}),
	})

	// the withdrawal target is supplied by the caller and stored lowercase,
	// so the record can correlate against destination-chain events
	record, err := recovery.Recover(context.Background(), testMnemonic, "0x0d23FC1a21ECA27eD56B3a19B0CBE4A47DFc6685")
	require.NoError(t, err)
	assert.Equal(t, "0x0d23fc1a21eca27ed56b3a19b0cbe4a47dfc6685", record.DestinationAddress)

	record, err = recovery.Recover(context.Background(), testMnemonic, "")
	require.NoError(t, err)
	assert.Empty(t, record.DestinationAddress)
}

func TestRecoverOppositeDirection(t *testing.T) {
	var requests int
	var accounts []string

	server := newHistoryServer(t, []history.Transfer{
		{TransferType: "deposit", Status: "success", Blockchain: "eth", Denom: "zil", Amount: "3"},
	}, &requests, &accounts)
	defer server.Close()

	recovery := NewRecovery(RecoveryOpts{
		Network: types.MainNet,
		History: history.NewClient(history.ClientOpts{BaseURL: server.URL}),
	})

	record, err := recovery.Recover(context.Background(), testMnemonic, "")
	require.NoError(t, err)

	assert.Equal(t, types.Ethereum, record.SourceChain)
	assert.Equal(t, types.Zilliqa, record.DestinationChain)
}

func TestRecoverIncompletePhrase(t *testing.T) {
	var requests int
	var accounts []string

	server := newHistoryServer(t, nil, &requests, &accounts)
	defer server.Close()

	recovery := NewRecovery(RecoveryOpts{
		Network: types.MainNet,
		History: history.NewClient(history.ClientOpts{BaseURL: server.URL}),
	})

	_, err := recovery.Recover(context.Background(), testMnemonic[:11], "")
	assert.ErrorIs(t, err, types.ErrIncompletePhrase)

	// blank entries do not count towards the twelve words
	padded := append(append([]string{" ", ""}, testMnemonic[:11]...), "")
	_, err = recovery.Recover(context.Background(), padded, "")
	assert.ErrorIs(t, err, types.ErrIncompletePhrase)

	assert.Zero(t, requests)
}

func TestRecoverInvalidPhrase(t *testing.T) {
	var requests int
	var accounts []string

	server := newHistoryServer(t, nil, &requests, &accounts)
	defer server.Close()

	recovery := NewRecovery(RecoveryOpts{
		Network: types.MainNet,
		History: history.NewClient(history.ClientOpts{BaseURL: server.URL}),
	})

	bad := strings.Fields(strings.Repeat("abandon ", 12))
	_, err := recovery.Recover(context.Background(), bad, "")
	assert.ErrorIs(t, err, types.ErrInvalidPhrase)
	assert.Zero(t, requests)
}

func TestRecoverNoDepositFound(t *testing.T) {
	var requests int
	var accounts []string

	server := newHistoryServer(t, []history.Transfer{
		{TransferType: "withdrawal", Status: "success", Blockchain: "zil", Denom: "zil", Amount: "5"},
	}, &requests, &accounts)
	defer server.Close()

	recovery := NewRecovery(RecoveryOpts{
		Network: types.MainNet,
		History: history.NewClient(history.ClientOpts{BaseURL: server.URL}),
	})

	_, err := recovery.Recover(context.Background(), testMnemonic, "")
	assert.ErrorIs(t, err, types.ErrTransferNotFound)
}
