package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/zilswap/xbridge/types"
)

type feeKey struct {
	chain   types.Blockchain
	manager common.Address
}

// FeeResolver reads the current relay fee from a token manager and caches it
// for the lifetime of the form session. Callers invalidate entries when the
// session's chain or token selection changes.
type FeeResolver struct {
	clients ClientSource
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[feeKey]decimal.Decimal
}

func NewFeeResolver(clients ClientSource, logger *slog.Logger) *FeeResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeeResolver{
		clients: clients,
		logger:  logger,
		cache:   make(map[feeKey]decimal.Decimal),
	}
}

// GetFee returns the relay fee, in the fee token's base units, charged by the
// token manager on the chain where the withdrawal leg occurs. Failures are
// returned to the caller; there is no automatic retry.
func (f *FeeResolver) GetFee(ctx context.Context, chain types.Blockchain, manager common.Address) (decimal.Decimal, error) {
	key := feeKey{chain: chain, manager: manager}

	f.mu.Lock()
	if fee, ok := f.cache[key]; ok {
		f.mu.Unlock()
		return fee, nil
	}
	f.mu.Unlock()

	client, err := f.clients(chain)
	if err != nil {
		return decimal.Zero, err
	}

	raw, err := client.GetFees(ctx, manager)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch withdraw fee: %w", err)
	}

	fee := decimal.NewFromBigInt(raw, 0)
	if fee.IsNegative() {
		fee = decimal.Zero
	}

	f.mu.Lock()
	f.cache[key] = fee
	f.mu.Unlock()

	f.logger.Debug("fetched withdraw fee", "chain", chain, "manager", manager.Hex(), "fee", fee)
	return fee, nil
}

// Invalidate drops one cached entry; the next GetFee re-fetches.
func (f *FeeResolver) Invalidate(chain types.Blockchain, manager common.Address) {
	f.mu.Lock()
	delete(f.cache, feeKey{chain: chain, manager: manager})
	f.mu.Unlock()
}

// Reset drops the whole cache, for a fresh form session.
func (f *FeeResolver) Reset() {
	f.mu.Lock()
	f.cache = make(map[feeKey]decimal.Decimal)
	f.mu.Unlock()
}
