package types

import "errors"

var (
	ErrUnsupportedChain   = errors.New("chain not supported on this network")
	ErrUnknownChainID     = errors.New("no chain registered for numeric id")
	ErrTokenNotRegistered = errors.New("token not registered for chain")

	ErrWithdrawEventNotFound = errors.New("unable to find withdraw event from tx")
	ErrNoPendingMatch        = errors.New("no pending transfer matches dispatch event")

	ErrIncompletePhrase  = errors.New("recovery phrase requires 12 words")
	ErrInvalidPhrase     = errors.New("recovery phrase is not a valid mnemonic")
	ErrTransferNotFound  = errors.New("no completed deposit found for interim address")
	ErrSignerRequired    = errors.New("no signer configured for submission")
	ErrInsufficientValue = errors.New("transfer amount must be positive")
)
