package evm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zilswap/xbridge/types"
)

// encodes a dynamic bytes argument the way the gateway emits call payloads
func packBytesArg(b []byte) []byte {
	data := make([]byte, 64+((len(b)+31)/32)*32)
	data[31] = 32
	big.NewInt(int64(len(b))).FillBytes(data[32:64])
	copy(data[64:], b)
	return data
}

func TestDecodeDispatched(t *testing.T) {
	target := common.HexToAddress("0x99bCB148BEC418Fc66ebF7ACA3668ec1C6289695")
	txHash := common.HexToHash("0xfeed")

	lg := ethtypes.Log{
		Topics: []common.Hash{
			DispatchedTopic,
			common.BigToHash(big.NewInt(32769)),
			common.BytesToHash(target.Bytes()),
		},
		Data:   packBytesArg([]byte{0xde, 0xad, 0xbe, 0xef}),
		TxHash: txHash,
	}

	ev, err := DecodeDispatched(lg)
	require.NoError(t, err)

	assert.Equal(t, uint64(32769), ev.SourceChainID.Uint64())
	assert.Equal(t, target, ev.Target)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, ev.Call)
	assert.Equal(t, txHash, ev.TxHash)
}

func TestDecodeDispatchedRejectsOtherLogs(t *testing.T) {
	_, err := DecodeDispatched(ethtypes.Log{
		Topics: []common.Hash{WithdrawnFromLockProxyTopic, {}, {}},
	})
	assert.Error(t, err)
}

func TestScanWithdrawEvent(t *testing.T) {
	target := common.HexToAddress("0x99bCB148BEC418Fc66ebF7ACA3668ec1C6289695")
	token := common.HexToAddress("0x6EeB539D662bB971a4a01211c67CB7f65B09b802")
	recipient := common.HexToAddress("0x0d23FC1a21ECA27eD56B3a19B0CBE4A47DFc6685")

	amount := make([]byte, 32)
	big.NewInt(1500).FillBytes(amount)

	receipt := &ethtypes.Receipt{Logs: []*ethtypes.Log{
		// unrelated log from another contract
		{Address: common.HexToAddress("0x1"), Topics: []common.Hash{DispatchedTopic}},
		// same contract, different event
		{Address: target, Topics: []common.Hash{DispatchedTopic}},
		{
			Address: target,
			Topics: []common.Hash{
				WithdrawnFromLockProxyTopic,
				common.BytesToHash(token.Bytes()),
				common.BytesToHash(recipient.Bytes()),
			},
			Data: amount,
		},
	}}

	ev, err := ScanWithdrawEvent(receipt, target)
	require.NoError(t, err)

	assert.Equal(t, token, ev.Token)
	assert.Equal(t, recipient, ev.Recipient)
	assert.Equal(t, int64(1500), ev.Amount.Int64())
}

func TestScanWithdrawEventNotFound(t *testing.T) {
	receipt := &ethtypes.Receipt{Logs: []*ethtypes.Log{
		{Address: common.HexToAddress("0x1"), Topics: []common.Hash{WithdrawnFromLockProxyTopic, {}, {}}},
	}}

	_, err := ScanWithdrawEvent(receipt, common.HexToAddress("0x2"))
	assert.ErrorIs(t, err, types.ErrWithdrawEventNotFound)
}

func TestPackTransfer(t *testing.T) {
	data, err := PackTransfer(
		common.HexToAddress("0xCcF3Ea256d42Aeef0EE0e39Bfc94bAa9Fa14b0Ba"),
		big.NewInt(1),
		common.HexToAddress("0x0d23FC1a21ECA27eD56B3a19B0CBE4A47DFc6685"),
		big.NewInt(1000),
	)
	require.NoError(t, err)

	// 4-byte selector plus four static words
	assert.Len(t, data, 4+4*32)
	assert.Equal(t, tokenManagerABI.Methods["transfer"].ID, data[:4])
}

func TestPackAndUnpackGetFees(t *testing.T) {
	data, err := PackGetFees()
	require.NoError(t, err)
	assert.Len(t, data, 4)

	out := make([]byte, 32)
	big.NewInt(25000).FillBytes(out)

	fee, err := UnpackGetFees(out)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), fee.Int64())
}

func TestAllowanceRoundTrip(t *testing.T) {
	data, err := PackAllowance(
		common.HexToAddress("0x1"),
		common.HexToAddress("0x2"),
	)
	require.NoError(t, err)
	assert.Len(t, data, 4+2*32)

	out := make([]byte, 32)
	big.NewInt(777).FillBytes(out)

	allowance, err := UnpackAllowance(out)
	require.NoError(t, err)
	assert.Equal(t, int64(777), allowance.Int64())
}
