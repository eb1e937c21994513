// Package registry holds the static chain-configuration tables consumed by
// the bridge engine: which tokens exist on which chains, their decimals, and
// which token manager moves them. The tables are read-only.
package registry

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zilswap/xbridge/types"
)

// NativeAddress marks a chain's native asset in token tables.
var NativeAddress = common.Address{}

type TokenConfig struct {
	Symbol              string
	Address             common.Address
	Decimals            int32
	TokenManagerAddress common.Address
	TokenManagerType    types.TokenManagerType
	BridgesTo           []types.Blockchain

	// token addresses on remote chains, keyed by destination
	Chains map[types.Blockchain]string
}

// Native reports whether the token is the chain's native asset.
func (t TokenConfig) Native() bool {
	return t.Address == NativeAddress
}

// RemoteToken returns the token's canonical identifier on the destination
// chain, lowercase hex.
func (t TokenConfig) RemoteToken(dst types.Blockchain) (string, bool) {
	addr, ok := t.Chains[dst]
	return strings.ToLower(addr), ok
}

type ChainConfig struct {
	Name                string
	Chain               types.Blockchain
	ChainID             uint64
	ChainGatewayAddress common.Address
	NativeTokenSymbol   string
	Tokens              []TokenConfig
}

// Token looks up a token by its address on this chain.
func (c ChainConfig) Token(address common.Address) (TokenConfig, bool) {
	for _, t := range c.Tokens {
		if t.Address == address {
			return t, true
		}
	}
	return TokenConfig{}, false
}

// TokenBySymbol looks up a token by symbol, case-insensitive.
func (c ChainConfig) TokenBySymbol(symbol string) (TokenConfig, bool) {
	for _, t := range c.Tokens {
		if strings.EqualFold(t.Symbol, symbol) {
			return t, true
		}
	}
	return TokenConfig{}, false
}

// Get returns the chain configuration for a chain on a network.
func Get(network types.Network, chain types.Blockchain) (ChainConfig, error) {
	cfg, ok := chainConfigs[network][chain]
	if !ok {
		return ChainConfig{}, types.ErrUnsupportedChain
	}
	return cfg, nil
}

// ChainFromID resolves the textual chain identifier from the numeric chain id
// carried in dispatch events.
func ChainFromID(network types.Network, chainID uint64) (types.Blockchain, error) {
	for chain, cfg := range chainConfigs[network] {
		if cfg.ChainID == chainID {
			return chain, nil
		}
	}
	return "", types.ErrUnknownChainID
}

// Chains returns every chain configured for the network.
func Chains(network types.Network) []types.Blockchain {
	chains := make([]types.Blockchain, 0, len(chainConfigs[network]))
	for chain := range chainConfigs[network] {
		chains = append(chains, chain)
	}
	return chains
}
