package bridge

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/zilswap/xbridge/database/models"
	"github.com/zilswap/xbridge/types"
)

// fakeChain implements Chain for tests. Zero value behaves like an empty
// chain that accepts everything.
type fakeChain struct {
	mu sync.Mutex

	fees      *big.Int
	feeCalls  int
	allowance *big.Int

	sent     []*ethtypes.Transaction
	receipts map[common.Hash]*ethtypes.Receipt

	logCh chan<- ethtypes.Log
	subs  int
}

func (f *fakeChain) SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- ethtypes.Log) (ethereum.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logCh = ch
	f.subs++
	return &fakeSubscription{errCh: make(chan error)}, nil
}

func (f *fakeChain) TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if receipt, ok := f.receipts[txHash]; ok {
		return receipt, nil
	}
	// pretend everything mines instantly
	return &ethtypes.Receipt{Status: ethtypes.ReceiptStatusSuccessful, TxHash: txHash}, nil
}

func (f *fakeChain) GetFees(ctx context.Context, manager common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feeCalls++
	if f.fees == nil {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(f.fees), nil
}

func (f *fakeChain) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.allowance == nil {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(f.allowance), nil
}

func (f *fakeChain) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint64(len(f.sent)), nil
}

func (f *fakeChain) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeChain) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return 100_000, nil
}

func (f *fakeChain) SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeChain) sentTxs() []*ethtypes.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*ethtypes.Transaction(nil), f.sent...)
}

func (f *fakeChain) source() ClientSource {
	return func(chain types.Blockchain) (Chain, error) {
		return f, nil
	}
}

type fakeSubscription struct {
	errCh chan error
}

func (s *fakeSubscription) Unsubscribe()      {}
func (s *fakeSubscription) Err() <-chan error { return s.errCh }

// fakeStore implements TransferStore in memory, keyed by source tx hash.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]models.BridgeTransfer
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]models.BridgeTransfer)}
}

func (s *fakeStore) Upsert(ctx context.Context, transfers []models.BridgeTransfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range transfers {
		s.records[t.SourceTxHash] = t
	}
	return nil
}

func (s *fakeStore) ListPending(ctx context.Context, network types.Network, dstChain types.Blockchain) ([]models.BridgeTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var pending []models.BridgeTransfer
	for _, t := range s.records {
		if t.Network == network && t.DestinationChain == dstChain && t.Pending() {
			pending = append(pending, t)
		}
	}
	return pending, nil
}

func (s *fakeStore) get(hash string) (models.BridgeTransfer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.records[hash]
	return t, ok
}
