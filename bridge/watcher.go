package bridge

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/zilswap/xbridge/database/models"
	"github.com/zilswap/xbridge/evm"
	"github.com/zilswap/xbridge/registry"
	"github.com/zilswap/xbridge/types"
)

const (
	resubscribeBaseDelay = time.Second
	resubscribeMaxDelay  = time.Minute
)

// Watcher subscribes to chain gateway dispatch events and marks pending
// transfers complete once their withdrawal lands on the destination chain.
// One listener per destination chain, started on demand and released once no
// pending transfers remain for it.
type Watcher struct {
	opts WatcherOpts

	mu        sync.Mutex
	listeners map[types.Blockchain]*listenerHandle
}

type WatcherOpts struct {
	Network types.Network
	Store   TransferStore
	Clients ClientSource
	Logger  *slog.Logger
}

type listenerHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func NewWatcher(opts WatcherOpts) *Watcher {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Watcher{
		opts:      opts,
		listeners: make(map[types.Blockchain]*listenerHandle),
	}
}

// EnsureListening starts a gateway listener for the chain if one is not
// already running. Safe to call repeatedly.
func (w *Watcher) EnsureListening(chain types.Blockchain) error {
	cfg, err := registry.Get(w.opts.Network, chain)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.listeners[chain]; ok {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	handle := &listenerHandle{cancel: cancel, done: make(chan struct{})}
	w.listeners[chain] = handle

	go w.run(ctx, chain, cfg.ChainGatewayAddress, handle.done)

	w.opts.Logger.Info("gateway listener started", "chain", chain, "gateway", cfg.ChainGatewayAddress.Hex())
	return nil
}

// Listening reports whether a listener is currently running for the chain.
func (w *Watcher) Listening(chain types.Blockchain) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.listeners[chain]
	return ok
}

// Sync reconciles listeners with demand: every chain with pending transfers
// gets a listener, every chain without loses its listener. Called at startup
// and after store mutations that can change the pending set.
func (w *Watcher) Sync(ctx context.Context) error {
	for _, chain := range registry.Chains(w.opts.Network) {
		pending, err := w.opts.Store.ListPending(ctx, w.opts.Network, chain)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			w.release(chain)
			continue
		}
		if err := w.EnsureListening(chain); err != nil {
			w.opts.Logger.Error("failed to start gateway listener", "chain", chain, "error", err)
		}
	}
	return nil
}

// Close stops all listeners and waits for them to drain.
func (w *Watcher) Close() {
	w.mu.Lock()
	handles := make([]*listenerHandle, 0, len(w.listeners))
	for chain, handle := range w.listeners {
		handle.cancel()
		handles = append(handles, handle)
		delete(w.listeners, chain)
	}
	w.mu.Unlock()

	for _, handle := range handles {
		<-handle.done
	}
}

// run is the listener loop for one chain. Subscription drops re-dial with
// capped exponential backoff; the loop exits only on cancel.
func (w *Watcher) run(ctx context.Context, chain types.Blockchain, gateway common.Address, done chan struct{}) {
	defer close(done)

	logger := w.opts.Logger.With("chain", string(chain))
	delay := resubscribeBaseDelay

	for {
		err := w.subscribe(ctx, chain, gateway, logger)
		if err == nil || errors.Is(err, context.Canceled) {
			return
		}

		logger.Warn("gateway subscription dropped, reconnecting", "error", err, "delay", delay)

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		delay *= 2
		if delay > resubscribeMaxDelay {
			delay = resubscribeMaxDelay
		}
	}
}

func (w *Watcher) subscribe(ctx context.Context, chain types.Blockchain, gateway common.Address, logger *slog.Logger) error {
	client, err := w.opts.Clients(chain)
	if err != nil {
		return err
	}

	logs := make(chan ethtypes.Log, 64)
	sub, err := client.SubscribeFilterLogs(ctx, ethereum.FilterQuery{
		Addresses: []common.Address{gateway},
		Topics:    [][]common.Hash{{evm.DispatchedTopic}},
	}, logs)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return err
		case lg := <-logs:
			if err := w.handleDispatch(ctx, chain, client, lg); err != nil {
				logger.Error("failed to handle dispatch event", "txHash", lg.TxHash.Hex(), "error", err)
			}
		}
	}
}

// handleDispatch correlates one gateway dispatch against the pending set and,
// on a match, stamps the destination tx onto the record.
func (w *Watcher) handleDispatch(ctx context.Context, chain types.Blockchain, client Chain, lg ethtypes.Log) error {
	ev, err := evm.DecodeDispatched(lg)
	if err != nil {
		return err
	}

	pending, err := w.opts.Store.ListPending(ctx, w.opts.Network, chain)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		w.ReleaseIfIdle(ctx, chain)
		return nil
	}

	receipt, err := client.TransactionReceipt(ctx, lg.TxHash)
	if err != nil {
		return err
	}

	withdraw, err := evm.ScanWithdrawEvent(receipt, ev.Target)
	if err != nil {
		if errors.Is(err, types.ErrWithdrawEventNotFound) {
			w.opts.Logger.Debug("dispatch carried no withdrawal", "chain", chain, "txHash", lg.TxHash.Hex())
			return nil
		}
		return err
	}

	srcChain, err := registry.ChainFromID(w.opts.Network, ev.SourceChainID.Uint64())
	if err != nil {
		return err
	}

	recipient := strings.ToLower(withdraw.Recipient.Hex())
	token := strings.ToLower(withdraw.Token.Hex())
	now := time.Now()

	for i := range pending {
		record := &pending[i]
		if record.SourceChain != srcChain {
			continue
		}
		if strings.ToLower(record.DestinationAddress) != recipient {
			continue
		}
		if strings.ToLower(record.DestinationToken) != token {
			continue
		}

		record.DestinationTxHash = lg.TxHash.Hex()
		record.DestinationConfirmedAt = &now

		if err := w.opts.Store.Upsert(ctx, []models.BridgeTransfer{*record}); err != nil {
			return err
		}

		w.opts.Logger.Info("transfer completed",
			"sourceChain", srcChain,
			"destinationChain", chain,
			"sourceTxHash", record.SourceTxHash,
			"destinationTxHash", record.DestinationTxHash)

		w.ReleaseIfIdle(ctx, chain)
		return nil
	}

	w.opts.Logger.Debug("dispatch matched no pending transfer", "chain", chain, "txHash", lg.TxHash.Hex())
	return nil
}

// ReleaseIfIdle stops the chain's listener when no pending transfers remain.
func (w *Watcher) ReleaseIfIdle(ctx context.Context, chain types.Blockchain) {
	pending, err := w.opts.Store.ListPending(ctx, w.opts.Network, chain)
	if err != nil || len(pending) > 0 {
		return
	}
	w.release(chain)
}

func (w *Watcher) release(chain types.Blockchain) {
	w.mu.Lock()
	handle, ok := w.listeners[chain]
	if ok {
		delete(w.listeners, chain)
	}
	w.mu.Unlock()

	if ok {
		handle.cancel()
		w.opts.Logger.Info("gateway listener released", "chain", chain)
	}
}
