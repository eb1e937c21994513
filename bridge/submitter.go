package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"github.com/zilswap/xbridge/database/models"
	"github.com/zilswap/xbridge/evm"
	"github.com/zilswap/xbridge/registry"
	"github.com/zilswap/xbridge/types"
	"github.com/zilswap/xbridge/wallet"
)

const defaultConfirmInterval = 4 * time.Second

// Submitter orchestrates the source-chain leg of a transfer: optional
// allowance approval, then the value-bearing lock/burn call. A record is
// built only once the transfer call has a hash; earlier failures abort with
// nothing stored.
type Submitter struct {
	opts SubmitterOpts
}

type SubmitterOpts struct {
	Network types.Network
	Clients ClientSource
	Fees    *FeeResolver
	Signer  wallet.Signer
	Logger  *slog.Logger

	// poll interval while waiting for the approval tx to confirm
	ConfirmInterval time.Duration
}

func NewSubmitter(opts SubmitterOpts) *Submitter {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ConfirmInterval == 0 {
		opts.ConfirmInterval = defaultConfirmInterval
	}
	return &Submitter{opts: opts}
}

type SubmitRequest struct {
	SourceChain        types.Blockchain
	DestinationChain   types.Blockchain
	Token              registry.TokenConfig
	Amount             decimal.Decimal // human units
	DestinationAddress string
}

// Submit runs the full source-leg sequence and returns the initial transfer
// record for the caller to push into the store. Single attempt, no retry.
func (s *Submitter) Submit(ctx context.Context, req SubmitRequest) (models.BridgeTransfer, error) {
	if s.opts.Signer == nil {
		return models.BridgeTransfer{}, types.ErrSignerRequired
	}
	if !req.Amount.IsPositive() {
		return models.BridgeTransfer{}, types.ErrInsufficientValue
	}

	srcCfg, err := registry.Get(s.opts.Network, req.SourceChain)
	if err != nil {
		return models.BridgeTransfer{}, err
	}
	dstCfg, err := registry.Get(s.opts.Network, req.DestinationChain)
	if err != nil {
		return models.BridgeTransfer{}, err
	}

	dstTokenAddr, ok := req.Token.RemoteToken(req.DestinationChain)
	if !ok {
		return models.BridgeTransfer{}, types.ErrTokenNotRegistered
	}
	dstToken, ok := dstCfg.Token(common.HexToAddress(dstTokenAddr))
	if !ok {
		return models.BridgeTransfer{}, types.ErrTokenNotRegistered
	}

	client, err := s.opts.Clients(req.SourceChain)
	if err != nil {
		return models.BridgeTransfer{}, err
	}

	depositAmt := req.Amount.Shift(req.Token.Decimals).Truncate(0).BigInt()
	srcChainID := new(big.Int).SetUint64(srcCfg.ChainID)
	owner := s.opts.Signer.Address()

	// 1. spend approval, skipped entirely for the native asset
	var approvalTxHash string
	if !req.Token.Native() {
		approvalTxHash, err = s.ensureAllowance(ctx, client, srcChainID, req.Token, owner, depositAmt)
		if err != nil {
			return models.BridgeTransfer{}, err
		}
	}

	// 2. relay fee is read from the destination leg's token manager
	fee, err := s.opts.Fees.GetFee(ctx, req.DestinationChain, dstToken.TokenManagerAddress)
	if err != nil {
		return models.BridgeTransfer{}, err
	}

	// 3. fee rides on the source call; the native asset carries amount + fee
	value := fee.Truncate(0).BigInt()
	if req.Token.Native() {
		value = new(big.Int).Add(depositAmt, value)
	}

	// 4. the lock/burn call itself
	input, err := evm.PackTransfer(
		req.Token.Address,
		new(big.Int).SetUint64(dstCfg.ChainID),
		common.HexToAddress(req.DestinationAddress),
		depositAmt,
	)
	if err != nil {
		return models.BridgeTransfer{}, err
	}

	tx, err := s.sendTransaction(ctx, client, srcChainID, req.Token.TokenManagerAddress, value, input)
	if err != nil {
		return models.BridgeTransfer{}, fmt.Errorf("failed to submit transfer: %w", err)
	}

	s.opts.Logger.Info("bridge transfer submitted",
		"sourceChain", req.SourceChain,
		"destinationChain", req.DestinationChain,
		"token", req.Token.Symbol,
		"txHash", tx.Hash().Hex())

	// 5. only now does a record exist
	now := time.Now()
	return models.BridgeTransfer{
		SourceChain:        req.SourceChain,
		DestinationChain:   req.DestinationChain,
		Network:            s.opts.Network,
		SourceAddress:      strings.ToLower(owner.Hex()),
		DestinationAddress: strings.ToLower(req.DestinationAddress),
		SourceToken:        strings.ToLower(req.Token.Address.Hex()),
		DestinationToken:   dstTokenAddr,
		WithdrawFee:        fee,
		InputAmount:        req.Amount,
		ApprovalTxHash:     approvalTxHash,
		SourceTxHash:       tx.Hash().Hex(),
		DispatchedAt:       &now,
	}, nil
}

// ensureAllowance tops up the token-manager allowance when it is short of the
// deposit amount and waits for the approval to confirm. Returns the approval
// tx hash, or empty when no approval was needed.
func (s *Submitter) ensureAllowance(ctx context.Context, client Chain, chainID *big.Int, token registry.TokenConfig, owner common.Address, depositAmt *big.Int) (string, error) {
	allowance, err := client.Allowance(ctx, token.Address, owner, token.TokenManagerAddress)
	if err != nil {
		return "", fmt.Errorf("failed to read allowance: %w", err)
	}
	if allowance.Cmp(depositAmt) >= 0 {
		return "", nil
	}

	deficit := new(big.Int).Sub(depositAmt, allowance)
	input, err := evm.PackApprove(token.TokenManagerAddress, deficit)
	if err != nil {
		return "", err
	}

	tx, err := s.sendTransaction(ctx, client, chainID, token.Address, nil, input)
	if err != nil {
		return "", fmt.Errorf("failed to submit approval: %w", err)
	}

	s.opts.Logger.Info("approval submitted", "token", token.Symbol, "txHash", tx.Hash().Hex())

	receipt, err := s.waitMined(ctx, client, tx.Hash())
	if err != nil {
		return "", fmt.Errorf("failed waiting for approval: %w", err)
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return "", fmt.Errorf("approval tx %s reverted", tx.Hash().Hex())
	}

	return tx.Hash().Hex(), nil
}

func (s *Submitter) sendTransaction(ctx context.Context, client Chain, chainID *big.Int, to common.Address, value *big.Int, input []byte) (*ethtypes.Transaction, error) {
	from := s.opts.Signer.Address()

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}
	gas, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  input,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     input,
	})

	signed, err := s.opts.Signer.SignTx(tx, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign tx: %w", err)
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		return nil, err
	}
	return signed, nil
}

func (s *Submitter) waitMined(ctx context.Context, client Chain, txHash common.Hash) (*ethtypes.Receipt, error) {
	ticker := time.NewTicker(s.opts.ConfirmInterval)
	defer ticker.Stop()

	for {
		receipt, err := client.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
