package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// RateLimiterConfig mirrors the CCIP RateLimiter.Config tuple. Disabled
// configs (the default for testnet pools) are the zero value.
type RateLimiterConfig struct {
	IsEnabled bool
	Capacity  *big.Int
	Rate      *big.Int
}

// ChainUpdate mirrors the TokenPool.ChainUpdate tuple passed to
// applyChainUpdates.
type ChainUpdate struct {
	RemoteChainSelector       uint64
	RemotePoolAddresses       [][]byte
	RemoteTokenAddress        []byte
	OutboundRateLimiterConfig RateLimiterConfig
	InboundRateLimiterConfig  RateLimiterConfig
}

// NewChainUpdate builds a rate-limit-disabled update connecting the local
// pool to one remote chain.
func NewChainUpdate(remoteSelector uint64, remotePool, remoteToken common.Address) ChainUpdate {
	disabled := RateLimiterConfig{Capacity: big.NewInt(0), Rate: big.NewInt(0)}
	return ChainUpdate{
		RemoteChainSelector:       remoteSelector,
		RemotePoolAddresses:       [][]byte{EncodeRemoteAddress(remotePool)},
		RemoteTokenAddress:        EncodeRemoteAddress(remoteToken),
		OutboundRateLimiterConfig: disabled,
		InboundRateLimiterConfig:  disabled,
	}
}

// BurnMintTokenPool wraps a deployed CCIP burn/mint pool.
type BurnMintTokenPool struct {
	addr     common.Address
	contract *bind.BoundContract
}

func NewBurnMintTokenPool(addr common.Address, backend bind.ContractBackend) *BurnMintTokenPool {
	return &BurnMintTokenPool{
		addr:     addr,
		contract: bind.NewBoundContract(addr, parsedBurnMintPool, backend, backend, backend),
	}
}

func (p *BurnMintTokenPool) Address() common.Address {
	return p.addr
}

func (p *BurnMintTokenPool) ApplyChainUpdates(opts *bind.TransactOpts, removes []uint64, adds []ChainUpdate) (*types.Transaction, error) {
	if removes == nil {
		removes = []uint64{}
	}
	tx, err := p.contract.Transact(opts, "applyChainUpdates", removes, adds)
	if err != nil {
		return nil, fmt.Errorf("applyChainUpdates %s: %w", p.addr.Hex(), err)
	}
	return tx, nil
}

func (p *BurnMintTokenPool) IsSupportedChain(ctx context.Context, remoteSelector uint64) (bool, error) {
	var out []interface{}
	if err := p.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isSupportedChain", remoteSelector); err != nil {
		return false, fmt.Errorf("isSupportedChain %s: %w", p.addr.Hex(), err)
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (p *BurnMintTokenPool) GetRemotePools(ctx context.Context, remoteSelector uint64) ([][]byte, error) {
	var out []interface{}
	if err := p.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getRemotePools", remoteSelector); err != nil {
		return nil, fmt.Errorf("getRemotePools %s: %w", p.addr.Hex(), err)
	}
	return *abi.ConvertType(out[0], new([][]byte)).(*[][]byte), nil
}

func (p *BurnMintTokenPool) GetRemoteToken(ctx context.Context, remoteSelector uint64) ([]byte, error) {
	var out []interface{}
	if err := p.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getRemoteToken", remoteSelector); err != nil {
		return nil, fmt.Errorf("getRemoteToken %s: %w", p.addr.Hex(), err)
	}
	return *abi.ConvertType(out[0], new([]byte)).(*[]byte), nil
}

func (p *BurnMintTokenPool) GetToken(ctx context.Context) (common.Address, error) {
	var out []interface{}
	if err := p.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getToken"); err != nil {
		return common.Address{}, fmt.Errorf("getToken %s: %w", p.addr.Hex(), err)
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// TokenConfig is the registry's record for one token.
type TokenConfig struct {
	Administrator        common.Address `json:"administrator"`
	PendingAdministrator common.Address `json:"pending_administrator"`
	TokenPool            common.Address `json:"token_pool"`
}

// TokenAdminRegistry wraps the CCIP token admin registry.
type TokenAdminRegistry struct {
	addr     common.Address
	contract *bind.BoundContract
}

func NewTokenAdminRegistry(addr common.Address, backend bind.ContractBackend) *TokenAdminRegistry {
	return &TokenAdminRegistry{
		addr:     addr,
		contract: bind.NewBoundContract(addr, parsedTokenAdminRegistry, backend, backend, backend),
	}
}

func (r *TokenAdminRegistry) GetPool(ctx context.Context, token common.Address) (common.Address, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getPool", token); err != nil {
		return common.Address{}, fmt.Errorf("getPool: %w", err)
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (r *TokenAdminRegistry) SetPool(opts *bind.TransactOpts, token, pool common.Address) (*types.Transaction, error) {
	tx, err := r.contract.Transact(opts, "setPool", token, pool)
	if err != nil {
		return nil, fmt.Errorf("setPool: %w", err)
	}
	return tx, nil
}

func (r *TokenAdminRegistry) AcceptAdminRole(opts *bind.TransactOpts, token common.Address) (*types.Transaction, error) {
	tx, err := r.contract.Transact(opts, "acceptAdminRole", token)
	if err != nil {
		return nil, fmt.Errorf("acceptAdminRole: %w", err)
	}
	return tx, nil
}

func (r *TokenAdminRegistry) GetTokenConfig(ctx context.Context, token common.Address) (TokenConfig, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getTokenConfig", token); err != nil {
		return TokenConfig{}, fmt.Errorf("getTokenConfig: %w", err)
	}
	return *abi.ConvertType(out[0], new(TokenConfig)).(*TokenConfig), nil
}

// RegistryModuleOwnerCustom wraps the registration module that lets a token's
// owner claim the CCIP admin role.
type RegistryModuleOwnerCustom struct {
	addr     common.Address
	contract *bind.BoundContract
}

func NewRegistryModuleOwnerCustom(addr common.Address, backend bind.ContractBackend) *RegistryModuleOwnerCustom {
	return &RegistryModuleOwnerCustom{
		addr:     addr,
		contract: bind.NewBoundContract(addr, parsedRegistryModuleOwner, backend, backend, backend),
	}
}

func (m *RegistryModuleOwnerCustom) RegisterAdminViaOwner(opts *bind.TransactOpts, token common.Address) (*types.Transaction, error) {
	tx, err := m.contract.Transact(opts, "registerAdminViaOwner", token)
	if err != nil {
		return nil, fmt.Errorf("registerAdminViaOwner: %w", err)
	}
	return tx, nil
}
