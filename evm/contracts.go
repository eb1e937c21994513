package evm

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/zilswap/xbridge/types"
)

// The gateway and token-manager interfaces are small fixed fragments, parsed
// once at startup rather than generated bindings.
const (
	gatewayABIJSON = `[
		{"type":"event","name":"Dispatched","anonymous":false,"inputs":[
			{"indexed":true,"name":"sourceChainId","type":"uint256"},
			{"indexed":true,"name":"target","type":"address"},
			{"indexed":false,"name":"call","type":"bytes"}]}
	]`

	tokenManagerABIJSON = `[
		{"type":"function","name":"transfer","stateMutability":"payable","inputs":[
			{"name":"token","type":"address"},
			{"name":"remoteChainId","type":"uint256"},
			{"name":"remoteRecipient","type":"address"},
			{"name":"amount","type":"uint256"}],"outputs":[]},
		{"type":"function","name":"getFees","stateMutability":"view","inputs":[],"outputs":[
			{"name":"","type":"uint256"}]},
		{"type":"event","name":"WithdrawnFromLockProxy","anonymous":false,"inputs":[
			{"indexed":true,"name":"token","type":"address"},
			{"indexed":true,"name":"recipient","type":"address"},
			{"indexed":false,"name":"amount","type":"uint256"}]}
	]`

	erc20ABIJSON = `[
		{"type":"function","name":"allowance","stateMutability":"view","inputs":[
			{"name":"owner","type":"address"},
			{"name":"spender","type":"address"}],"outputs":[
			{"name":"","type":"uint256"}]},
		{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[
			{"name":"spender","type":"address"},
			{"name":"amount","type":"uint256"}],"outputs":[
			{"name":"","type":"bool"}]}
	]`
)

var (
	gatewayABI      = mustParseABI(gatewayABIJSON)
	tokenManagerABI = mustParseABI(tokenManagerABIJSON)
	erc20ABI        = mustParseABI(erc20ABIJSON)

	DispatchedTopic             = crypto.Keccak256Hash([]byte("Dispatched(uint256,address,bytes)"))
	WithdrawnFromLockProxyTopic = crypto.Keccak256Hash([]byte("WithdrawnFromLockProxy(address,address,uint256)"))
)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(fmt.Sprintf("invalid contract abi: %v", err))
	}
	return parsed
}

// DispatchedEvent is a decoded gateway Dispatched log: the relay network has
// driven a message through to this chain.
type DispatchedEvent struct {
	SourceChainID *big.Int
	Target        common.Address
	Call          []byte
	TxHash        common.Hash
}

func DecodeDispatched(lg ethtypes.Log) (DispatchedEvent, error) {
	if len(lg.Topics) < 3 || lg.Topics[0] != DispatchedTopic {
		return DispatchedEvent{}, fmt.Errorf("log is not a Dispatched event")
	}

	ev := DispatchedEvent{
		SourceChainID: new(big.Int).SetBytes(lg.Topics[1].Bytes()),
		Target:        common.BytesToAddress(lg.Topics[2].Bytes()),
		TxHash:        lg.TxHash,
	}

	values, err := gatewayABI.Unpack("Dispatched", lg.Data)
	if err != nil {
		return DispatchedEvent{}, fmt.Errorf("failed to unpack Dispatched: %w", err)
	}
	if len(values) > 0 {
		if call, ok := values[0].([]byte); ok {
			ev.Call = call
		}
	}

	return ev, nil
}

// WithdrawEvent is a decoded token-manager WithdrawnFromLockProxy log.
type WithdrawEvent struct {
	Token     common.Address
	Recipient common.Address
	Amount    *big.Int
}

func DecodeWithdrawn(lg ethtypes.Log) (WithdrawEvent, error) {
	if len(lg.Topics) < 3 || lg.Topics[0] != WithdrawnFromLockProxyTopic {
		return WithdrawEvent{}, fmt.Errorf("log is not a WithdrawnFromLockProxy event")
	}

	ev := WithdrawEvent{
		Token:     common.BytesToAddress(lg.Topics[1].Bytes()),
		Recipient: common.BytesToAddress(lg.Topics[2].Bytes()),
	}

	values, err := tokenManagerABI.Unpack("WithdrawnFromLockProxy", lg.Data)
	if err != nil {
		return WithdrawEvent{}, fmt.Errorf("failed to unpack WithdrawnFromLockProxy: %w", err)
	}
	if len(values) > 0 {
		if amount, ok := values[0].(*big.Int); ok {
			ev.Amount = amount
		}
	}

	return ev, nil
}

// ScanWithdrawEvent finds the nested withdraw event emitted by the target
// token manager within a dispatch transaction's receipt.
func ScanWithdrawEvent(receipt *ethtypes.Receipt, target common.Address) (WithdrawEvent, error) {
	for _, lg := range receipt.Logs {
		if lg.Address != target {
			continue
		}
		if len(lg.Topics) == 0 || lg.Topics[0] != WithdrawnFromLockProxyTopic {
			continue
		}
		return DecodeWithdrawn(*lg)
	}
	return WithdrawEvent{}, types.ErrWithdrawEventNotFound
}

func PackTransfer(token common.Address, remoteChainID *big.Int, remoteRecipient common.Address, amount *big.Int) ([]byte, error) {
	return tokenManagerABI.Pack("transfer", token, remoteChainID, remoteRecipient, amount)
}

func PackGetFees() ([]byte, error) {
	return tokenManagerABI.Pack("getFees")
}

func UnpackGetFees(data []byte) (*big.Int, error) {
	values, err := tokenManagerABI.Unpack("getFees", data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack getFees: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected getFees output")
	}
	fee, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected getFees output type %T", values[0])
	}
	return fee, nil
}

func PackAllowance(owner, spender common.Address) ([]byte, error) {
	return erc20ABI.Pack("allowance", owner, spender)
}

func UnpackAllowance(data []byte) (*big.Int, error) {
	values, err := erc20ABI.Unpack("allowance", data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack allowance: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected allowance output")
	}
	allowance, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected allowance output type %T", values[0])
	}
	return allowance, nil
}

func PackApprove(spender common.Address, amount *big.Int) ([]byte, error) {
	return erc20ABI.Pack("approve", spender, amount)
}
