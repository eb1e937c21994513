package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zilswap/xbridge/types"
)

// BridgeTransfer is the central bridge record. SourceTxHash is its natural
// unique key within a network; merges and updates all key off it.
type BridgeTransfer struct {
	SourceChain      types.Blockchain
	DestinationChain types.Blockchain

	Network types.Network

	// address display formats depend on the chain family:
	// zil: bech32 (zil1...) or checksum hex, evm chains: hex (0x...)
	SourceAddress      string
	DestinationAddress string

	// canonical token identifiers on each side
	SourceToken      string
	DestinationToken string

	// fee charged on the destination leg, destination fee-token base units
	WithdrawFee decimal.Decimal

	// unitless (human) amount requested for transfer
	InputAmount decimal.Decimal

	// token spend approval on the source chain, when one was needed
	ApprovalTxHash string

	// the lock/burn tx on the source chain
	SourceTxHash string

	// set when the relay network acknowledged the deposit
	DepositConfirmedAt *time.Time

	// release/mint tx on the destination chain; presence means complete
	DestinationTxHash string

	DestinationConfirmedAt *time.Time

	// hidden from default views, never deleted
	DismissedAt *time.Time

	// set when the transfer entered the awaiting-relay state
	DispatchedAt *time.Time

	// advisory block confirmation count on the source chain
	SourceConfirmations uint64

	// reconstructed through the recovery path rather than submitted locally
	Recovered bool
}

// Pending reports whether the transfer awaits its destination leg.
func (t BridgeTransfer) Pending() bool {
	return t.SourceTxHash != "" && t.DestinationTxHash == "" && t.DismissedAt == nil
}

// Complete reports whether the transfer is terminal.
func (t BridgeTransfer) Complete() bool {
	return t.DestinationTxHash != ""
}

// Status derives the user-facing status; it is never stored.
func (t BridgeTransfer) Status() types.TransferStatus {
	switch {
	case t.DismissedAt != nil:
		return types.StatusDismissed
	case t.DestinationTxHash != "":
		return types.StatusComplete
	default:
		return types.StatusPending
	}
}
