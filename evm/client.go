package evm

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/zilswap/xbridge/registry"
	"github.com/zilswap/xbridge/types"
)

// Client wraps a JSON-RPC connection to one chain. Clients are shared
// read-only between the fee resolver and the watcher for the same chain.
type Client struct {
	*ethclient.Client
	chainID *big.Int
	logger  *slog.Logger
	Opts    ClientOpts
}

type ClientOpts struct {
	Endpoint string
	Chain    types.Blockchain
	Network  types.Network
	Logger   *slog.Logger
}

func NewClient(opts ClientOpts) (*Client, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	cfg, err := registry.Get(opts.Network, opts.Chain)
	if err != nil {
		return nil, err
	}

	client, err := ethclient.Dial(opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Chain, err)
	}

	chainID, err := client.ChainID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get chainId for %s: %w", opts.Chain, err)
	}
	if chainID.Uint64() != cfg.ChainID {
		return nil, fmt.Errorf("endpoint for %s reports chainId %d, registry expects %d",
			opts.Chain, chainID.Uint64(), cfg.ChainID)
	}

	opts.Logger.Info("connected", "chain", opts.Chain, "chainId", chainID)

	c := &Client{
		Client:  client,
		chainID: chainID,
		logger:  opts.Logger,
		Opts:    opts,
	}

	// Warn if the gateway contract is not found at the configured address.
	if ok, _ := c.IsContract(cfg.ChainGatewayAddress); !ok {
		opts.Logger.Warn("contract not found for chain gateway at given address",
			"address", cfg.ChainGatewayAddress.Hex(), "endpoint", opts.Endpoint)
	}

	return c, nil
}

// NumericChainID is the chain id the endpoint reported at dial time.
func (c *Client) NumericChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// IsContract reports whether code is deployed at the address.
func (c *Client) IsContract(address common.Address) (bool, error) {
	code, err := c.CodeAt(context.Background(), address, nil)
	if err != nil {
		return false, err
	}
	return !bytes.Equal(code, []byte{}), nil
}

// GetFees performs the read-only getFees() call against a token manager.
func (c *Client) GetFees(ctx context.Context, manager common.Address) (*big.Int, error) {
	input, err := PackGetFees()
	if err != nil {
		return nil, err
	}
	output, err := c.CallContract(ctx, ethereum.CallMsg{To: &manager, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("getFees call failed on %s: %w", c.Opts.Chain, err)
	}
	return UnpackGetFees(output)
}

// Allowance reads the current ERC20 spend allowance from owner to spender.
func (c *Client) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	input, err := PackAllowance(owner, spender)
	if err != nil {
		return nil, err
	}
	output, err := c.CallContract(ctx, ethereum.CallMsg{To: &token, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("allowance call failed on %s: %w", c.Opts.Chain, err)
	}
	return UnpackAllowance(output)
}
