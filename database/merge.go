package database

import "github.com/zilswap/xbridge/database/models"

// MergeTransfer shallow-merges incoming onto existing. Incoming fields win on
// conflict, with two exceptions: a set source tx hash and a set destination
// tx hash are immutable, so the first value is kept and the field name is
// returned for the caller to log. Factored out of the store so the merge
// semantics are testable without a database.
func MergeTransfer(existing, incoming models.BridgeTransfer) (models.BridgeTransfer, []string) {
	merged := existing
	var conflicts []string

	if incoming.SourceChain != "" {
		merged.SourceChain = incoming.SourceChain
	}
	if incoming.DestinationChain != "" {
		merged.DestinationChain = incoming.DestinationChain
	}
	if incoming.Network != "" {
		merged.Network = incoming.Network
	}
	if incoming.SourceAddress != "" {
		merged.SourceAddress = incoming.SourceAddress
	}
	if incoming.DestinationAddress != "" {
		merged.DestinationAddress = incoming.DestinationAddress
	}
	if incoming.SourceToken != "" {
		merged.SourceToken = incoming.SourceToken
	}
	if incoming.DestinationToken != "" {
		merged.DestinationToken = incoming.DestinationToken
	}
	if !incoming.WithdrawFee.IsZero() {
		merged.WithdrawFee = incoming.WithdrawFee
	}
	if !incoming.InputAmount.IsZero() {
		merged.InputAmount = incoming.InputAmount
	}
	if incoming.ApprovalTxHash != "" {
		merged.ApprovalTxHash = incoming.ApprovalTxHash
	}

	switch {
	case existing.SourceTxHash == "":
		merged.SourceTxHash = incoming.SourceTxHash
	case incoming.SourceTxHash != "" && incoming.SourceTxHash != existing.SourceTxHash:
		conflicts = append(conflicts, "source_tx_hash")
	}

	switch {
	case existing.DestinationTxHash == "":
		merged.DestinationTxHash = incoming.DestinationTxHash
	case incoming.DestinationTxHash != "" && incoming.DestinationTxHash != existing.DestinationTxHash:
		conflicts = append(conflicts, "destination_tx_hash")
	}

	if incoming.DepositConfirmedAt != nil {
		merged.DepositConfirmedAt = incoming.DepositConfirmedAt
	}
	if incoming.DestinationConfirmedAt != nil {
		merged.DestinationConfirmedAt = incoming.DestinationConfirmedAt
	}
	if incoming.DismissedAt != nil {
		merged.DismissedAt = incoming.DismissedAt
	}
	if incoming.DispatchedAt != nil {
		merged.DispatchedAt = incoming.DispatchedAt
	}
	if incoming.SourceConfirmations > 0 {
		merged.SourceConfirmations = incoming.SourceConfirmations
	}
	if incoming.Recovered {
		merged.Recovered = true
	}

	return merged, conflicts
}
