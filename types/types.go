package types

// Blockchain identifies one of the supported chains. The set is closed:
// transfers only ever reference chains listed here.
type Blockchain string

const (
	Zilliqa           Blockchain = "zil"
	Ethereum          Blockchain = "eth"
	BinanceSmartChain Blockchain = "bsc"
	Arbitrum          Blockchain = "arbitrum"
	Polygon           Blockchain = "polygon"
	Base              Blockchain = "base"

	// legacy chain, appears in old records only
	Neo Blockchain = "neo"
)

// BridgeableEVMChains lists every chain the engine can submit to or watch.
// Zilliqa is included because its gateway is EVM-compatible.
var BridgeableEVMChains = []Blockchain{
	Zilliqa,
	Ethereum,
	BinanceSmartChain,
	Arbitrum,
	Polygon,
	Base,
}

func (b Blockchain) Valid() bool {
	for _, c := range BridgeableEVMChains {
		if c == b {
			return true
		}
	}
	return false
}

// Network is the deployment environment a transfer belongs to. Transfers are
// never compared or merged across networks.
type Network string

const (
	MainNet Network = "mainnet"
	TestNet Network = "testnet"
)

// TokenManagerType selects the contract call shape used to move a token.
type TokenManagerType int

const (
	MintAndBurn TokenManagerType = iota
	LockAndRelease
	ZilBridge
)

func (t TokenManagerType) String() string {
	switch t {
	case MintAndBurn:
		return "MintAndBurn"
	case LockAndRelease:
		return "LockAndRelease"
	case ZilBridge:
		return "ZilBridge"
	default:
		return "Unknown"
	}
}

// TransferStatus is derived from a transfer's fields, never stored.
type TransferStatus string

const (
	// StatusPending - source tx submitted, awaiting the relay network
	StatusPending TransferStatus = "PENDING"

	// StatusComplete - destination tx observed, transfer is terminal
	StatusComplete TransferStatus = "COMPLETE"

	// StatusDismissed - hidden from default views by the user
	StatusDismissed TransferStatus = "DISMISSED"
)
