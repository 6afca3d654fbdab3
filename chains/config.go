package chains

import (
	"fmt"
	"sort"
	"strings"
)

// NetworkKey identifies one of the supported testnets.
type NetworkKey string

const (
	AvalancheFuji   NetworkKey = "avalancheFuji"
	EthereumSepolia NetworkKey = "ethereumSepolia"
	ArbitrumSepolia NetworkKey = "arbitrumSepolia"
)

// NetworkConfig describes a single EVM network.
type NetworkConfig struct {
	Key            NetworkKey `json:"key" yaml:"key"`
	Name           string     `json:"name" yaml:"name"`
	RPCURL         string     `json:"rpc_url" yaml:"rpcUrl"`
	BlockExplorer  string     `json:"block_explorer" yaml:"blockExplorer"`
	ChainID        int64      `json:"chain_id" yaml:"chainId"`
	NativeCurrency string     `json:"native_currency" yaml:"nativeCurrency"`
	NativeDecimals uint8      `json:"native_decimals" yaml:"nativeDecimals"`
}

// ContractAddresses holds per-network addresses of the Asetta contracts.
type ContractAddresses struct {
	MockUSDC            string `json:"mock_usdc" yaml:"mockUsdc"`
	RWAManager          string `json:"rwa_manager" yaml:"rwaManager"`
	TokenFactory        string `json:"token_factory" yaml:"tokenFactory"`
	PrimaryDistribution string `json:"primary_distribution" yaml:"primaryDistribution"`
	RFQ                 string `json:"rfq" yaml:"rfq"`
}

// ChainlinkConfig holds per-network Chainlink CCIP infrastructure addresses.
type ChainlinkConfig struct {
	Router              string `json:"router" yaml:"router"`
	LinkToken           string `json:"link_token" yaml:"linkToken"`
	RMNProxy            string `json:"rmn_proxy" yaml:"rmnProxy"`
	TokenAdminRegistry  string `json:"token_admin_registry" yaml:"tokenAdminRegistry"`
	RegistryModuleOwner string `json:"registry_module_owner" yaml:"registryModuleOwner"`
	ChainSelector       uint64 `json:"chain_selector" yaml:"chainSelector"`
}

// Network bundles everything a tool handler needs to talk to one chain.
type Network struct {
	NetworkConfig
	Contracts ContractAddresses `json:"contracts" yaml:"contracts"`
	Chainlink ChainlinkConfig   `json:"chainlink" yaml:"chainlink"`
}

var networks = map[NetworkKey]Network{
	AvalancheFuji: {
		NetworkConfig: NetworkConfig{
			Key:            AvalancheFuji,
			Name:           "Avalanche Fuji",
			RPCURL:         "https://api.avax-test.network/ext/bc/C/rpc",
			BlockExplorer:  "https://testnet.snowtrace.io",
			ChainID:        43113,
			NativeCurrency: "AVAX",
			NativeDecimals: 18,
		},
		Contracts: ContractAddresses{
			MockUSDC:            "0x5425890298aed601595a70AB815c96711a31Bc65",
			RWAManager:          "0x8e4dD573a91eC0f2c1EE75a00d6Fbf4689cD0A46",
			TokenFactory:        "0xD54a1D10651e0E3dAB4Ac40ae8970b61d0408A1b",
			PrimaryDistribution: "0x63E3C0FfBD589029C25c23a6aC20E3bf9a79E06E",
			RFQ:                 "0x9F1f1a33C1cc1B1cD3a3a3f1d2e8D3b25Db5aCe9",
		},
		Chainlink: ChainlinkConfig{
			Router:              "0xF694E193200268f9a4868e4Aa017A0118C9a8177",
			LinkToken:           "0x0b9d5D9136855f6FEc3c0993feE6E9CE8a297846",
			RMNProxy:            "0xAc8CFc3762a979628334a0E4C1026244498E821b",
			TokenAdminRegistry:  "0xA92053a4a3922084d992fD2835bdBa4caC6877e6",
			RegistryModuleOwner: "0x97300785aF1edE1343DB6d90706A35CF14aA3d81",
			ChainSelector:       14767482510784806043,
		},
	},
	EthereumSepolia: {
		NetworkConfig: NetworkConfig{
			Key:            EthereumSepolia,
			Name:           "Ethereum Sepolia",
			RPCURL:         "https://ethereum-sepolia-rpc.publicnode.com",
			BlockExplorer:  "https://sepolia.etherscan.io",
			ChainID:        11155111,
			NativeCurrency: "ETH",
			NativeDecimals: 18,
		},
		Contracts: ContractAddresses{
			MockUSDC:            "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238",
			RWAManager:          "0xBdCb1b22B54c34a2C54800b97cf9c8fc9a4Ba79F",
			TokenFactory:        "0x3cFd2bcDcbb40BaDE3D06b8D24e5f1D5c75E14dB",
			PrimaryDistribution: "0x7C4a9d8bDeE2E85BbF59CC0246dbeA6fbeA5C6a4",
			RFQ:                 "0xe6B98F1bF7be303a0F1AF425f6Ebbd9d72d1afaC",
		},
		Chainlink: ChainlinkConfig{
			Router:              "0x0BF3dE8c5D3e8A2B34D2BEeB17ABfCeBaf363A59",
			LinkToken:           "0x779877A7B0D9E8603169DdbD7836e478b4624789",
			RMNProxy:            "0xba3f6251de62dED61Ff98590cB2fDf6871FbB991",
			TokenAdminRegistry:  "0x95F29FEe11c5C55d26cCcf1DB6772DE953B37B82",
			RegistryModuleOwner: "0x62e731218d0D47305aba2BE3751E7EE9E5520790",
			ChainSelector:       16015286601757825753,
		},
	},
	ArbitrumSepolia: {
		NetworkConfig: NetworkConfig{
			Key:            ArbitrumSepolia,
			Name:           "Arbitrum Sepolia",
			RPCURL:         "https://sepolia-rollup.arbitrum.io/rpc",
			BlockExplorer:  "https://sepolia.arbiscan.io",
			ChainID:        421614,
			NativeCurrency: "ETH",
			NativeDecimals: 18,
		},
		Contracts: ContractAddresses{
			MockUSDC:            "0x75faf114eafb1BDbe2F0316DF893fd58CE46AA4d",
			RWAManager:          "0xcA71aBcdCF4A031eA700FE6cA8cBE1E355DbAaE6",
			TokenFactory:        "0x9bE834a2E1e0e12bF4DbBe9863beD2E57a93Ba52",
			PrimaryDistribution: "0x40d83Ff9E66A2b43Bd57dDC9AE3Ab0e0aeff3BcE",
			RFQ:                 "0x21bE5254F0C7Aad50Ed1bAe0CCdE7C2Cb2A26Ea3",
		},
		Chainlink: ChainlinkConfig{
			Router:              "0x2a9C5afB0d0e4BAb2BCdaE109EC4b0c4Be15a165",
			LinkToken:           "0xb1D4538B4571d411F07960EF2838Ce337FE1E80E",
			RMNProxy:            "0x9527E2d01A3064ef6b50c1Da1C0cC523803BCFF2",
			TokenAdminRegistry:  "0x8126bE56454B628a88C17849B9ED99dd5a11Bd2f",
			RegistryModuleOwner: "0xE324e848f1Ee00c5cF245396dFA95F2438aC9fcD",
			ChainSelector:       3478487238524512106,
		},
	},
}

// Get returns the configuration for a network key.
func Get(key string) (Network, error) {
	trimmed := strings.TrimSpace(key)
	for k, n := range networks {
		if strings.EqualFold(string(k), trimmed) {
			return n, nil
		}
	}
	return Network{}, fmt.Errorf("unsupported network %q (supported: %s)", key, strings.Join(Keys(), ", "))
}

// Keys returns the supported network keys in a stable order.
func Keys() []string {
	out := make([]string, 0, len(networks))
	for k := range networks {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

// All returns every supported network.
func All() []Network {
	out := make([]Network, 0, len(networks))
	for _, k := range Keys() {
		n, _ := Get(k)
		out = append(out, n)
	}
	return out
}

// BySelector resolves a network by its CCIP chain selector.
func BySelector(selector uint64) (Network, error) {
	for _, n := range networks {
		if n.Chainlink.ChainSelector == selector {
			return n, nil
		}
	}
	return Network{}, fmt.Errorf("no supported network with chain selector %d", selector)
}

// TxURL builds a block explorer link for a transaction hash.
func (n Network) TxURL(txHash string) string {
	return fmt.Sprintf("%s/tx/%s", strings.TrimRight(n.BlockExplorer, "/"), txHash)
}

// AddressURL builds a block explorer link for an address.
func (n Network) AddressURL(addr string) string {
	return fmt.Sprintf("%s/address/%s", strings.TrimRight(n.BlockExplorer, "/"), addr)
}
