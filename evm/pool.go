package evm

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/zilswap/xbridge/types"
)

// Pool lazily dials and caches one client per chain for a single network,
// so the fee resolver and the watcher share the same connection.
type Pool struct {
	network   types.Network
	endpoints map[types.Blockchain]string
	logger    *slog.Logger

	mu      sync.Mutex
	clients map[types.Blockchain]*Client
}

func NewPool(network types.Network, endpoints map[types.Blockchain]string, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		network:   network,
		endpoints: endpoints,
		logger:    logger,
		clients:   make(map[types.Blockchain]*Client),
	}
}

// Client returns the cached client for a chain, dialing on first use.
func (p *Pool) Client(chain types.Blockchain) (*Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[chain]; ok {
		return client, nil
	}

	endpoint, ok := p.endpoints[chain]
	if !ok || endpoint == "" {
		return nil, fmt.Errorf("no rpc endpoint configured for %s: %w", chain, types.ErrUnsupportedChain)
	}

	client, err := NewClient(ClientOpts{
		Endpoint: endpoint,
		Chain:    chain,
		Network:  p.network,
		Logger:   p.logger.With("chain", string(chain)),
	})
	if err != nil {
		return nil, err
	}

	p.clients[chain] = client
	return client, nil
}

// Close disconnects every cached client.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for chain, client := range p.clients {
		client.Client.Close()
		delete(p.clients, chain)
	}
}
