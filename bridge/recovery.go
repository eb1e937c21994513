package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/tyler-smith/go-bip39"
	"github.com/zilswap/xbridge/database/models"
	"github.com/zilswap/xbridge/history"
	"github.com/zilswap/xbridge/registry"
	"github.com/zilswap/xbridge/types"
)

const (
	mnemonicWordCount = 12
	relayAddressHRP   = "swth"
)

// TransferHistory is the relay network history lookup the recovery flow
// queries; *history.Client satisfies it.
type TransferHistory interface {
	Transfers(ctx context.Context, account string) ([]history.Transfer, error)
}

// Recovery reconstructs a transfer record for a deposit whose destination leg
// never happened, from nothing but the transfer's interim mnemonic.
type Recovery struct {
	opts RecoveryOpts
}

type RecoveryOpts struct {
	Network types.Network
	History TransferHistory
	Logger  *slog.Logger
}

func NewRecovery(opts RecoveryOpts) *Recovery {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Recovery{opts: opts}
}

// Recover derives the interim relay account from a 12-word mnemonic, looks up
// its deposit on the relay network, and returns a reconstructed record marked
// recovered. The record's source tx hash is synthetic, derived from the
// interim address and denom, so re-running recovery is idempotent.
// destinationAddress is the wallet the withdrawal should pay out to; without
// it the record cannot be correlated against destination-chain events.
func (r *Recovery) Recover(ctx context.Context, words []string, destinationAddress string) (models.BridgeTransfer, error) {
	phrase, err := normalizePhrase(words)
	if err != nil {
		return models.BridgeTransfer{}, err
	}

	address, err := deriveRelayAddress(phrase)
	if err != nil {
		return models.BridgeTransfer{}, err
	}

	r.opts.Logger.Debug("derived interim relay address", "address", address)

	transfers, err := r.opts.History.Transfers(ctx, address)
	if err != nil {
		return models.BridgeTransfer{}, err
	}

	deposit, ok := findDeposit(transfers)
	if !ok {
		return models.BridgeTransfer{}, types.ErrTransferNotFound
	}

	srcChain, err := chainFromName(deposit.Blockchain)
	if err != nil {
		return models.BridgeTransfer{}, err
	}
	dstChain := oppositeChain(srcChain)

	amount, err := decimal.NewFromString(deposit.Amount)
	if err != nil {
		return models.BridgeTransfer{}, fmt.Errorf("invalid deposit amount %q: %w", deposit.Amount, err)
	}
	fee, err := decimal.NewFromString(deposit.FeeAmount)
	if err != nil {
		fee = decimal.Zero
	}

	now := time.Now()
	record := models.BridgeTransfer{
		SourceChain:        srcChain,
		DestinationChain:   dstChain,
		Network:            r.opts.Network,
		DestinationAddress: strings.ToLower(destinationAddress),
		WithdrawFee:        fee,
		InputAmount:        amount,
		SourceTxHash:       syntheticTxHash(address, deposit.Denom),
		DispatchedAt:       &now,
		Recovered:          true,
	}

	// best effort, the denom may not map onto a registered token
	if cfg, err := registry.Get(r.opts.Network, dstChain); err == nil {
		if token, ok := cfg.TokenBySymbol(denomSymbol(deposit.Denom)); ok {
			record.DestinationToken = strings.ToLower(token.Address.Hex())
		}
	}

	if ts, err := time.Parse(time.RFC3339, deposit.Timestamp); err == nil {
		record.DepositConfirmedAt = &ts
	}

	r.opts.Logger.Info("recovered stuck transfer",
		"address", address,
		"sourceChain", srcChain,
		"destinationChain", dstChain,
		"denom", deposit.Denom)

	return record, nil
}

func normalizePhrase(words []string) (string, error) {
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		cleaned = append(cleaned, w)
	}
	if len(cleaned) != mnemonicWordCount {
		return "", types.ErrIncompletePhrase
	}

	phrase := strings.Join(cleaned, " ")
	if !bip39.IsMnemonicValid(phrase) {
		return "", types.ErrInvalidPhrase
	}
	return phrase, nil
}

// deriveRelayAddress derives the bech32 relay account at m/44'/118'/0'/0/0.
func deriveRelayAddress(phrase string) (string, error) {
	seed := bip39.NewSeed(phrase, "")

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return "", fmt.Errorf("failed to derive master key: %w", err)
	}

	for _, step := range []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + 118,
		hdkeychain.HardenedKeyStart + 0,
		0,
		0,
	} {
		key, err = key.Derive(step)
		if err != nil {
			return "", fmt.Errorf("failed to derive child key: %w", err)
		}
	}

	pub, err := key.ECPubKey()
	if err != nil {
		return "", fmt.Errorf("failed to derive public key: %w", err)
	}

	data, err := bech32.ConvertBits(btcutil.Hash160(pub.SerializeCompressed()), 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("failed to convert address bits: %w", err)
	}

	address, err := bech32.Encode(relayAddressHRP, data)
	if err != nil {
		return "", fmt.Errorf("failed to encode address: %w", err)
	}
	return address, nil
}

// findDeposit picks the newest successful deposit from the account's history.
func findDeposit(transfers []history.Transfer) (history.Transfer, bool) {
	for _, t := range transfers {
		if t.TransferType == "deposit" && t.Status == "success" {
			return t, true
		}
	}
	return history.Transfer{}, false
}

func chainFromName(name string) (types.Blockchain, error) {
	switch strings.ToLower(name) {
	case "zilliqa", "zil":
		return types.Zilliqa, nil
	case "ethereum", "eth":
		return types.Ethereum, nil
	case "binance smart chain", "bsc":
		return types.BinanceSmartChain, nil
	default:
		return "", fmt.Errorf("unknown blockchain %q: %w", name, types.ErrUnsupportedChain)
	}
}

// oppositeChain picks the destination leg for a recovered deposit. Interim
// relay accounts only ever bridge the Zilliqa<->Ethereum pair.
func oppositeChain(src types.Blockchain) types.Blockchain {
	if src == types.Zilliqa {
		return types.Ethereum
	}
	return types.Zilliqa
}

func syntheticTxHash(address, denom string) string {
	return crypto.Keccak256Hash([]byte("recovered|" + address + "|" + denom)).Hex()
}

// denomSymbol strips the relay network's chain suffix from a denom, e.g.
// "zil.e" -> "ZIL".
func denomSymbol(denom string) string {
	base, _, _ := strings.Cut(denom, ".")
	return strings.ToUpper(base)
}
