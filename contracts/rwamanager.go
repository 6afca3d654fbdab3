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

// ProjectInfo is the on-chain view of one RWA project.
type ProjectInfo struct {
	Token          common.Address `json:"token"`
	Creator        common.Address `json:"creator"`
	Status         uint8          `json:"status"`
	CCIPConfigured bool           `json:"ccip_configured"`
}

// RWAManager wraps the Asetta project manager contract.
type RWAManager struct {
	addr     common.Address
	contract *bind.BoundContract
}

func NewRWAManager(addr common.Address, backend bind.ContractBackend) *RWAManager {
	return &RWAManager{
		addr:     addr,
		contract: bind.NewBoundContract(addr, parsedRWAManager, backend, backend, backend),
	}
}

func (m *RWAManager) Address() common.Address {
	return m.addr
}

func (m *RWAManager) CreateRWAToken(opts *bind.TransactOpts, name, symbol string, totalSupply, pricePerToken *big.Int) (*types.Transaction, error) {
	tx, err := m.contract.Transact(opts, "createRWAToken", name, symbol, totalSupply, pricePerToken)
	if err != nil {
		return nil, fmt.Errorf("createRWAToken: %w", err)
	}
	return tx, nil
}

func (m *RWAManager) GetProjectInfo(ctx context.Context, projectID *big.Int) (ProjectInfo, error) {
	var out []interface{}
	if err := m.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getProjectInfo", projectID); err != nil {
		return ProjectInfo{}, fmt.Errorf("getProjectInfo %s: %w", projectID, err)
	}
	return ProjectInfo{
		Token:          *abi.ConvertType(out[0], new(common.Address)).(*common.Address),
		Creator:        *abi.ConvertType(out[1], new(common.Address)).(*common.Address),
		Status:         *abi.ConvertType(out[2], new(uint8)).(*uint8),
		CCIPConfigured: *abi.ConvertType(out[3], new(bool)).(*bool),
	}, nil
}

func (m *RWAManager) MarkCCIPConfigured(opts *bind.TransactOpts, projectID *big.Int) (*types.Transaction, error) {
	tx, err := m.contract.Transact(opts, "markCCIPConfigured", projectID)
	if err != nil {
		return nil, fmt.Errorf("markCCIPConfigured: %w", err)
	}
	return tx, nil
}

func (m *RWAManager) RegisterForPrimarySales(opts *bind.TransactOpts, projectID, tokensForSale, pricePerTokenUSDC *big.Int) (*types.Transaction, error) {
	tx, err := m.contract.Transact(opts, "registerForPrimarySales", projectID, tokensForSale, pricePerTokenUSDC)
	if err != nil {
		return nil, fmt.Errorf("registerForPrimarySales: %w", err)
	}
	return tx, nil
}

func (m *RWAManager) ActivatePrimarySales(opts *bind.TransactOpts, projectID *big.Int) (*types.Transaction, error) {
	tx, err := m.contract.Transact(opts, "activatePrimarySales", projectID)
	if err != nil {
		return nil, fmt.Errorf("activatePrimarySales: %w", err)
	}
	return tx, nil
}

// TokenCreated is the decoded RWATokenCreated event.
type TokenCreated struct {
	ProjectID *big.Int
	Token     common.Address
	Creator   common.Address
}

// ParseTokenCreated scans a receipt for the manager's RWATokenCreated event.
func (m *RWAManager) ParseTokenCreated(receipt *types.Receipt) (*TokenCreated, error) {
	topic := parsedRWAManager.Events["RWATokenCreated"].ID
	for _, lg := range receipt.Logs {
		if lg.Address != m.addr || len(lg.Topics) != 4 || lg.Topics[0] != topic {
			continue
		}
		return &TokenCreated{
			ProjectID: new(big.Int).SetBytes(lg.Topics[1].Bytes()),
			Token:     common.BytesToAddress(lg.Topics[2].Bytes()),
			Creator:   common.BytesToAddress(lg.Topics[3].Bytes()),
		}, nil
	}
	return nil, fmt.Errorf("RWATokenCreated event not found in tx %s", receipt.TxHash.Hex())
}

// TokenFactory wraps the factory that deploys CCIP burn/mint pools for RWA
// tokens.
type TokenFactory struct {
	addr     common.Address
	contract *bind.BoundContract
}

func NewTokenFactory(addr common.Address, backend bind.ContractBackend) *TokenFactory {
	return &TokenFactory{
		addr:     addr,
		contract: bind.NewBoundContract(addr, parsedTokenFactory, backend, backend, backend),
	}
}

func (f *TokenFactory) Address() common.Address {
	return f.addr
}

func (f *TokenFactory) DeployCCIPPool(opts *bind.TransactOpts, token, rmnProxy, router common.Address) (*types.Transaction, error) {
	tx, err := f.contract.Transact(opts, "deployCCIPPool", token, rmnProxy, router)
	if err != nil {
		return nil, fmt.Errorf("deployCCIPPool: %w", err)
	}
	return tx, nil
}

// ParsePoolDeployed scans a receipt for the factory's CCIPPoolDeployed event
// and returns the new pool address.
func (f *TokenFactory) ParsePoolDeployed(receipt *types.Receipt) (common.Address, error) {
	topic := parsedTokenFactory.Events["CCIPPoolDeployed"].ID
	for _, lg := range receipt.Logs {
		if lg.Address != f.addr || len(lg.Topics) != 3 || lg.Topics[0] != topic {
			continue
		}
		return common.BytesToAddress(lg.Topics[2].Bytes()), nil
	}
	return common.Address{}, fmt.Errorf("CCIPPoolDeployed event not found in tx %s", receipt.TxHash.Hex())
}
