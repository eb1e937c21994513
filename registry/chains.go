package registry

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/zilswap/xbridge/types"
)

func addr(s string) common.Address { return common.HexToAddress(s) }

var chainConfigs = map[types.Network]map[types.Blockchain]ChainConfig{
	types.MainNet: {
		types.Zilliqa: {
			Name:                "Zilliqa",
			Chain:               types.Zilliqa,
			ChainID:             32769,
			ChainGatewayAddress: addr("0xbA44BC29371E19117DA666B729A1c6e1b35DDb40"),
			NativeTokenSymbol:   "ZIL",
			Tokens: []TokenConfig{
				{
					Symbol:              "SEED",
					Address:             addr("0xe64cA52EF34FdD7e20C0c7fb2E392cc9b4F6D049"),
					Decimals:            18,
					TokenManagerAddress: addr("0x6D61eFb60C17979816E4cE12CD5D29054E755948"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.BinanceSmartChain},
					Chains: map[types.Blockchain]string{
						types.BinanceSmartChain: "0x9158dF7da69b048a296636D5DE7a3d9A7FB25E88",
					},
				},
				{
					Symbol:              "HRSE",
					Address:             addr("0x63B991C17010C21250a0eA58C6697F696a48cdf3"),
					Decimals:            18,
					TokenManagerAddress: addr("0x6D61eFb60C17979816E4cE12CD5D29054E755948"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.BinanceSmartChain},
					Chains: map[types.Blockchain]string{
						types.BinanceSmartChain: "0x3BE0E5EDC7657a7C8E9E5f3F4C77cB18B421a0b6",
					},
				},
				{
					Symbol:              "FPS",
					Address:             addr("0x241c677D9969419800402521ae87C411897A029f"),
					Decimals:            12,
					TokenManagerAddress: addr("0x6D61eFb60C17979816E4cE12CD5D29054E755948"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.BinanceSmartChain},
					Chains: map[types.Blockchain]string{
						types.BinanceSmartChain: "0x351dA1E7500aBA1d168b9435f3a45700D68642cB",
					},
				},
				{
					Symbol:              "ZIL",
					Address:             NativeAddress,
					Decimals:            18,
					TokenManagerAddress: addr("0x4fa6148C9DAbC7A737422fb1b3AB9088c878d26C"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo: []types.Blockchain{
						types.Ethereum, types.Polygon, types.Arbitrum, types.BinanceSmartChain,
					},
					Chains: map[types.Blockchain]string{
						types.Ethereum:          "0x6EeB539D662bB971a4a01211c67CB7f65B09b802",
						types.Polygon:           "0xCc88D28f7d4B0D5AFACCC77F6102d88EE630fA17",
						types.Arbitrum:          "0x1816a0f20bc996f643b1af078e8d84a0aabd772a",
						types.BinanceSmartChain: "0xb1E6F8820826491FCc5519f84fF4E2bdBb6e3Cad",
					},
				},
				{
					Symbol:              "XCAD",
					Address:             addr("0xCcF3Ea256d42Aeef0EE0e39Bfc94bAa9Fa14b0Ba"),
					Decimals:            18,
					TokenManagerAddress: addr("0x4fa6148C9DAbC7A737422fb1b3AB9088c878d26C"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.Ethereum},
					Chains: map[types.Blockchain]string{
						types.Ethereum: "0x7659CE147D0e714454073a5dd7003544234b6Aa0",
					},
				},
				{
					Symbol:              "ETH",
					Address:             addr("0x17D5af5658A24bd964984b36d28e879a8626adC3"),
					Decimals:            18,
					TokenManagerAddress: addr("0x4fa6148C9DAbC7A737422fb1b3AB9088c878d26C"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.Ethereum, types.Arbitrum},
					Chains: map[types.Blockchain]string{
						types.Ethereum: "0x0000000000000000000000000000000000000000",
						types.Arbitrum: "0x0000000000000000000000000000000000000000",
					},
				},
				{
					Symbol:              "WBTC",
					Address:             addr("0x2938fF251Aecc1dfa768D7d0276eB6d073690317"),
					Decimals:            8,
					TokenManagerAddress: addr("0x4fa6148C9DAbC7A737422fb1b3AB9088c878d26C"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.Ethereum},
					Chains: map[types.Blockchain]string{
						types.Ethereum: "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599",
					},
				},
				{
					Symbol:              "USDT",
					Address:             addr("0x2274005778063684fbB1BfA96a2b725dC37D75f9"),
					Decimals:            6,
					TokenManagerAddress: addr("0x4fa6148C9DAbC7A737422fb1b3AB9088c878d26C"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.Ethereum},
					Chains: map[types.Blockchain]string{
						types.Ethereum: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
					},
				},
			},
		},
		types.Ethereum: {
			Name:                "Ethereum",
			Chain:               types.Ethereum,
			ChainID:             1,
			ChainGatewayAddress: addr("0x49EA20823c953dd00619E2090DFa3965C89269C3"),
			NativeTokenSymbol:   "ETH",
			Tokens: []TokenConfig{
				{
					Symbol:              "ZIL",
					Address:             addr("0x6EeB539D662bB971a4a01211c67CB7f65B09b802"),
					Decimals:            12,
					TokenManagerAddress: addr("0x99bCB148BEC418Fc66ebF7ACA3668ec1C6289695"),
					TokenManagerType:    types.ZilBridge,
					BridgesTo:           []types.Blockchain{types.Zilliqa},
					Chains: map[types.Blockchain]string{
						types.Zilliqa: "0x0000000000000000000000000000000000000000",
					},
				},
				{
					Symbol:              "XCAD",
					Address:             addr("0x7659CE147D0e714454073a5dd7003544234b6Aa0"),
					Decimals:            18,
					TokenManagerAddress: addr("0x2EE8e8D7C113Bb7c180f4755f06ed50bE53BEDe5"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.Zilliqa},
					Chains: map[types.Blockchain]string{
						types.Zilliqa: "0xCcF3Ea256d42Aeef0EE0e39Bfc94bAa9Fa14b0Ba",
					},
				},
				{
					Symbol:              "ETH",
					Address:             NativeAddress,
					Decimals:            18,
					TokenManagerAddress: addr("0x2EE8e8D7C113Bb7c180f4755f06ed50bE53BEDe5"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.Zilliqa},
					Chains: map[types.Blockchain]string{
						types.Zilliqa: "0x17D5af5658A24bd964984b36d28e879a8626adC3",
					},
				},
				{
					Symbol:              "WBTC",
					Address:             addr("0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599"),
					Decimals:            8,
					TokenManagerAddress: addr("0x2EE8e8D7C113Bb7c180f4755f06ed50bE53BEDe5"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.Zilliqa},
					Chains: map[types.Blockchain]string{
						types.Zilliqa: "0x2938fF251Aecc1dfa768D7d0276eB6d073690317",
					},
				},
				{
					Symbol:              "USDT",
					Address:             addr("0xdAC17F958D2ee523a2206206994597C13D831ec7"),
					Decimals:            6,
					TokenManagerAddress: addr("0x2EE8e8D7C113Bb7c180f4755f06ed50bE53BEDe5"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.Zilliqa},
					Chains: map[types.Blockchain]string{
						types.Zilliqa: "0x2274005778063684fbB1BfA96a2b725dC37D75f9",
					},
				},
			},
		},
		types.BinanceSmartChain: {
			Name:                "Binance Smart Chain",
			Chain:               types.BinanceSmartChain,
			ChainID:             56,
			ChainGatewayAddress: addr("0x3967f1a272Ed007e6B6471b942d655C802b42009"),
			NativeTokenSymbol:   "BNB",
			Tokens: []TokenConfig{
				{
					Symbol:              "SEED",
					Address:             addr("0x9158dF7da69b048a296636D5DE7a3d9A7FB25E88"),
					Decimals:            18,
					TokenManagerAddress: addr("0xF391A1Ee7b3ccad9a9451D2B7460Ac646F899f23"),
					TokenManagerType:    types.MintAndBurn,
					BridgesTo:           []types.Blockchain{types.Zilliqa},
					Chains: map[types.Blockchain]string{
						types.Zilliqa: "0xe64cA52EF34FdD7e20C0c7fb2E392cc9b4F6D049",
					},
				},
				{
					Symbol:              "ZIL",
					Address:             addr("0xb1E6F8820826491FCc5519f84fF4E2bdBb6e3Cad"),
					Decimals:            12,
					TokenManagerAddress: addr("0xF391A1Ee7b3ccad9a9451D2B7460Ac646F899f23"),
					TokenManagerType:    types.ZilBridge,
					BridgesTo:           []types.Blockchain{types.Zilliqa},
					Chains: map[types.Blockchain]string{
						types.Zilliqa: "0x0000000000000000000000000000000000000000",
					},
				},
			},
		},
		types.Polygon: {
			Name:                "Polygon",
			Chain:               types.Polygon,
			ChainID:             137,
			ChainGatewayAddress: addr("0x796d796F28b3dB5287e560dDf75BC9B00F0CD609"),
			NativeTokenSymbol:   "POL",
			Tokens: []TokenConfig{
				{
					Symbol:              "ZIL",
					Address:             addr("0xCc88D28f7d4B0D5AFACCC77F6102d88EE630fA17"),
					Decimals:            12,
					TokenManagerAddress: addr("0x3faC7cb5b45A3B59d76b6926bc704Cf3cc522437"),
					TokenManagerType:    types.ZilBridge,
					BridgesTo:           []types.Blockchain{types.Zilliqa},
					Chains: map[types.Blockchain]string{
						types.Zilliqa: "0x0000000000000000000000000000000000000000",
					},
				},
				{
					Symbol:              "POL",
					Address:             NativeAddress,
					Decimals:            18,
					TokenManagerAddress: addr("0x7519550ae8b6f9d32E9c1A939Fb5C186f660BE5b"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.Zilliqa},
					Chains: map[types.Blockchain]string{
						types.Zilliqa: "0x4345472A0c6164F35808CDb7e7eCCd3d326CC50b",
					},
				},
			},
		},
		types.Arbitrum: {
			Name:                "Arbitrum",
			Chain:               types.Arbitrum,
			ChainID:             42161,
			ChainGatewayAddress: addr("0xA5AD439b10c3d7FBa00492745cA599250aC21619"),
			NativeTokenSymbol:   "ETH",
			Tokens: []TokenConfig{
				{
					Symbol:              "ZIL",
					Address:             addr("0x1816a0f20bc996f643b1af078e8d84a0aabd772a"),
					Decimals:            12,
					TokenManagerAddress: addr("0x4fa6148C9DAbC7A737422fb1b3AB9088c878d26C"),
					TokenManagerType:    types.ZilBridge,
					BridgesTo:           []types.Blockchain{types.Zilliqa},
					Chains: map[types.Blockchain]string{
						types.Zilliqa: "0x0000000000000000000000000000000000000000",
					},
				},
				{
					Symbol:              "ETH",
					Address:             NativeAddress,
					Decimals:            18,
					TokenManagerAddress: addr("0x4345472A0c6164F35808CDb7e7eCCd3d326CC50b"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.Zilliqa},
					Chains: map[types.Blockchain]string{
						types.Zilliqa: "0x17D5af5658A24bd964984b36d28e879a8626adC3",
					},
				},
			},
		},
	},
	types.TestNet: {
		types.Zilliqa: {
			Name:                "Zilliqa Testnet",
			Chain:               types.Zilliqa,
			ChainID:             33101,
			ChainGatewayAddress: addr("0x7370e69565BB2313C4dA12F9062C282513919230"),
			NativeTokenSymbol:   "ZIL",
			Tokens: []TokenConfig{
				{
					Symbol:              "ZIL",
					Address:             NativeAddress,
					Decimals:            18,
					TokenManagerAddress: addr("0x1509988c41f02014aA59d455c6a0D67b5b50f129"),
					TokenManagerType:    types.LockAndRelease,
					BridgesTo:           []types.Blockchain{types.BinanceSmartChain},
					Chains: map[types.Blockchain]string{
						types.BinanceSmartChain: "0xfA3cF3BBa7f0fA1E8FECeE532512434A7d275d41",
					},
				},
			},
		},
		types.BinanceSmartChain: {
			Name:                "BSC Testnet",
			Chain:               types.BinanceSmartChain,
			ChainID:             97,
			ChainGatewayAddress: addr("0xa9A14C90e53EdCD89dFd201A3bF94D867f8098fE"),
			NativeTokenSymbol:   "BNB",
			Tokens: []TokenConfig{
				{
					Symbol:              "ZIL",
					Address:             addr("0xfA3cF3BBa7f0fA1E8FECeE532512434A7d275d41"),
					Decimals:            12,
					TokenManagerAddress: addr("0x36b8A9cd6Bf9bfA5984093005cf81CAfB1Bf06F7"),
					TokenManagerType:    types.ZilBridge,
					BridgesTo:           []types.Blockchain{types.Zilliqa},
					Chains: map[types.Blockchain]string{
						types.Zilliqa: "0x0000000000000000000000000000000000000000",
					},
				},
			},
		},
	},
}
