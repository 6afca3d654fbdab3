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

// ERC20 wraps a token contract with the read/write calls the wallet tools use.
type ERC20 struct {
	addr     common.Address
	contract *bind.BoundContract
}

// NewERC20 binds a token address to a backend.
func NewERC20(addr common.Address, backend bind.ContractBackend) *ERC20 {
	return &ERC20{
		addr:     addr,
		contract: bind.NewBoundContract(addr, parsedERC20, backend, backend, backend),
	}
}

// Address returns the token contract address.
func (t *ERC20) Address() common.Address {
	return t.addr
}

func (t *ERC20) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", owner); err != nil {
		return nil, fmt.Errorf("balanceOf %s: %w", t.addr.Hex(), err)
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (t *ERC20) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "allowance", owner, spender); err != nil {
		return nil, fmt.Errorf("allowance %s: %w", t.addr.Hex(), err)
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (t *ERC20) Decimals(ctx context.Context) (uint8, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "decimals"); err != nil {
		return 0, fmt.Errorf("decimals %s: %w", t.addr.Hex(), err)
	}
	return *abi.ConvertType(out[0], new(uint8)).(*uint8), nil
}

func (t *ERC20) Symbol(ctx context.Context) (string, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "symbol"); err != nil {
		return "", fmt.Errorf("symbol %s: %w", t.addr.Hex(), err)
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

func (t *ERC20) TotalSupply(ctx context.Context) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "totalSupply"); err != nil {
		return nil, fmt.Errorf("totalSupply %s: %w", t.addr.Hex(), err)
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (t *ERC20) Transfer(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	tx, err := t.contract.Transact(opts, "transfer", to, amount)
	if err != nil {
		return nil, fmt.Errorf("transfer %s: %w", t.addr.Hex(), err)
	}
	return tx, nil
}

func (t *ERC20) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	tx, err := t.contract.Transact(opts, "approve", spender, amount)
	if err != nil {
		return nil, fmt.Errorf("approve %s: %w", t.addr.Hex(), err)
	}
	return tx, nil
}

// RWAToken adds the mint/role surface of the Asetta RWA token on top of the
// plain ERC20 calls.
type RWAToken struct {
	*ERC20
	roles *bind.BoundContract
}

// NewRWAToken binds an RWA token address to a backend.
func NewRWAToken(addr common.Address, backend bind.ContractBackend) *RWAToken {
	return &RWAToken{
		ERC20: NewERC20(addr, backend),
		roles: bind.NewBoundContract(addr, parsedRWAToken, backend, backend, backend),
	}
}

func (t *RWAToken) Mint(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	tx, err := t.roles.Transact(opts, "mint", to, amount)
	if err != nil {
		return nil, fmt.Errorf("mint %s: %w", t.addr.Hex(), err)
	}
	return tx, nil
}

func (t *RWAToken) GrantRole(opts *bind.TransactOpts, role common.Hash, account common.Address) (*types.Transaction, error) {
	tx, err := t.roles.Transact(opts, "grantRole", role, account)
	if err != nil {
		return nil, fmt.Errorf("grantRole %s: %w", t.addr.Hex(), err)
	}
	return tx, nil
}

func (t *RWAToken) HasRole(ctx context.Context, role common.Hash, account common.Address) (bool, error) {
	var out []interface{}
	if err := t.roles.Call(&bind.CallOpts{Context: ctx}, &out, "hasRole", role, account); err != nil {
		return false, fmt.Errorf("hasRole %s: %w", t.addr.Hex(), err)
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}
