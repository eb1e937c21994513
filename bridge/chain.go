// Package bridge implements the cross-chain transfer engine: fee resolution,
// source-leg submission, destination dispatch watching, and phrase-based
// transfer recovery.
package bridge

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/zilswap/xbridge/database/models"
	"github.com/zilswap/xbridge/types"
)

// Chain is the slice of chain access the engine needs. *evm.Client satisfies
// it; tests substitute fakes.
type Chain interface {
	SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- ethtypes.Log) (ethereum.Subscription, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
	GetFees(ctx context.Context, manager common.Address) (*big.Int, error)
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error
}

// ClientSource hands out the cached chain client for a chain on the engine's
// network; (*evm.Pool).Client fits after a thin closure.
type ClientSource func(chain types.Blockchain) (Chain, error)

// TransferStore is the slice of the record store the engine mutates through.
type TransferStore interface {
	Upsert(ctx context.Context, transfers []models.BridgeTransfer) error
	ListPending(ctx context.Context, network types.Network, dstChain types.Blockchain) ([]models.BridgeTransfer, error)
}
