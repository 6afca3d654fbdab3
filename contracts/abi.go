package contracts

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ABI fragments for the contracts the tools touch. Only the functions and
// events the handlers actually call are declared; everything else stays on
// chain.

const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"constant":false,"inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

// rwaTokenABI extends ERC20 with the mint/role surface of the Asetta RWA
// token (AccessControl based).
const rwaTokenABI = `[
	{"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"mint","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"role","type":"bytes32"},{"name":"account","type":"address"}],"name":"grantRole","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"role","type":"bytes32"},{"name":"account","type":"address"}],"name":"hasRole","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"}
]`

const rwaManagerABI = `[
	{"inputs":[{"name":"name","type":"string"},{"name":"symbol","type":"string"},{"name":"totalSupply","type":"uint256"},{"name":"pricePerToken","type":"uint256"}],"name":"createRWAToken","outputs":[{"name":"projectId","type":"uint256"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"projectId","type":"uint256"}],"name":"getProjectInfo","outputs":[{"name":"token","type":"address"},{"name":"creator","type":"address"},{"name":"status","type":"uint8"},{"name":"ccipConfigured","type":"bool"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"projectId","type":"uint256"}],"name":"markCCIPConfigured","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"projectId","type":"uint256"},{"name":"tokensForSale","type":"uint256"},{"name":"pricePerTokenUSDC","type":"uint256"}],"name":"registerForPrimarySales","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"projectId","type":"uint256"}],"name":"activatePrimarySales","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"anonymous":false,"inputs":[{"indexed":true,"name":"projectId","type":"uint256"},{"indexed":true,"name":"token","type":"address"},{"indexed":true,"name":"creator","type":"address"}],"name":"RWATokenCreated","type":"event"}
]`

const tokenFactoryABI = `[
	{"inputs":[{"name":"token","type":"address"},{"name":"rmnProxy","type":"address"},{"name":"router","type":"address"}],"name":"deployCCIPPool","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"anonymous":false,"inputs":[{"indexed":true,"name":"token","type":"address"},{"indexed":true,"name":"pool","type":"address"}],"name":"CCIPPoolDeployed","type":"event"}
]`

const primaryDistributionABI = `[
	{"inputs":[{"name":"projectId","type":"uint256"},{"name":"usdcAmount","type":"uint256"}],"name":"purchaseTokens","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"projectId","type":"uint256"}],"name":"getSale","outputs":[{"name":"token","type":"address"},{"name":"pricePerTokenUSDC","type":"uint256"},{"name":"tokensRemaining","type":"uint256"},{"name":"active","type":"bool"}],"stateMutability":"view","type":"function"}
]`

// CCIP v1.5 token pool + registry surfaces.
const burnMintPoolABI = `[
	{"inputs":[{"name":"remoteChainSelectorsToRemove","type":"uint64[]"},{"components":[{"name":"remoteChainSelector","type":"uint64"},{"name":"remotePoolAddresses","type":"bytes[]"},{"name":"remoteTokenAddress","type":"bytes"},{"components":[{"name":"isEnabled","type":"bool"},{"name":"capacity","type":"uint128"},{"name":"rate","type":"uint128"}],"name":"outboundRateLimiterConfig","type":"tuple"},{"components":[{"name":"isEnabled","type":"bool"},{"name":"capacity","type":"uint128"},{"name":"rate","type":"uint128"}],"name":"inboundRateLimiterConfig","type":"tuple"}],"name":"chainsToAdd","type":"tuple[]"}],"name":"applyChainUpdates","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"remoteChainSelector","type":"uint64"}],"name":"isSupportedChain","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"remoteChainSelector","type":"uint64"}],"name":"getRemotePools","outputs":[{"name":"","type":"bytes[]"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"remoteChainSelector","type":"uint64"}],"name":"getRemoteToken","outputs":[{"name":"","type":"bytes"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getToken","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

const tokenAdminRegistryABI = `[
	{"inputs":[{"name":"token","type":"address"}],"name":"getPool","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"token","type":"address"},{"name":"pool","type":"address"}],"name":"setPool","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"token","type":"address"}],"name":"acceptAdminRole","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"token","type":"address"}],"name":"getTokenConfig","outputs":[{"components":[{"name":"administrator","type":"address"},{"name":"pendingAdministrator","type":"address"},{"name":"tokenPool","type":"address"}],"name":"","type":"tuple"}],"stateMutability":"view","type":"function"}
]`

const registryModuleOwnerABI = `[
	{"inputs":[{"name":"token","type":"address"}],"name":"registerAdminViaOwner","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

var (
	parsedERC20               abi.ABI
	parsedRWAToken            abi.ABI
	parsedRWAManager          abi.ABI
	parsedTokenFactory        abi.ABI
	parsedPrimaryDistribution abi.ABI
	parsedBurnMintPool        abi.ABI
	parsedTokenAdminRegistry  abi.ABI
	parsedRegistryModuleOwner abi.ABI

	// AccessControl role identifiers on the RWA token.
	MinterRole = crypto.Keccak256Hash([]byte("MINTER_ROLE"))
	BurnerRole = crypto.Keccak256Hash([]byte("BURNER_ROLE"))
)

func init() {
	parsedERC20 = mustParse("erc20", erc20ABI)
	parsedRWAToken = mustParse("rwa token", rwaTokenABI)
	parsedRWAManager = mustParse("rwa manager", rwaManagerABI)
	parsedTokenFactory = mustParse("token factory", tokenFactoryABI)
	parsedPrimaryDistribution = mustParse("primary distribution", primaryDistributionABI)
	parsedBurnMintPool = mustParse("burn mint pool", burnMintPoolABI)
	parsedTokenAdminRegistry = mustParse("token admin registry", tokenAdminRegistryABI)
	parsedRegistryModuleOwner = mustParse("registry module owner", registryModuleOwnerABI)
}

func mustParse(name, raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("parse %s abi: %v", name, err))
	}
	return parsed
}

// EncodeRemoteAddress ABI-encodes an EVM address the way CCIP expects remote
// pool/token addresses on the wire (left-padded to 32 bytes).
func EncodeRemoteAddress(addr common.Address) []byte {
	return common.LeftPadBytes(addr.Bytes(), 32)
}

// DecodeRemoteAddress reverses EncodeRemoteAddress. Inputs shorter than an
// address come back zero.
func DecodeRemoteAddress(encoded []byte) common.Address {
	if len(encoded) < common.AddressLength {
		return common.Address{}
	}
	return common.BytesToAddress(encoded[len(encoded)-common.AddressLength:])
}
