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

// Sale is the on-chain primary sale state of one project.
type Sale struct {
	Token             common.Address `json:"token"`
	PricePerTokenUSDC *big.Int       `json:"price_per_token_usdc"`
	TokensRemaining   *big.Int       `json:"tokens_remaining"`
	Active            bool           `json:"active"`
}

// PrimaryDistribution wraps the primary sales contract.
type PrimaryDistribution struct {
	addr     common.Address
	contract *bind.BoundContract
}

func NewPrimaryDistribution(addr common.Address, backend bind.ContractBackend) *PrimaryDistribution {
	return &PrimaryDistribution{
		addr:     addr,
		contract: bind.NewBoundContract(addr, parsedPrimaryDistribution, backend, backend, backend),
	}
}

func (d *PrimaryDistribution) Address() common.Address {
	return d.addr
}

// PurchaseTokens buys project tokens with USDC. The buyer must have approved
// the distribution contract for at least usdcAmount beforehand.
func (d *PrimaryDistribution) PurchaseTokens(opts *bind.TransactOpts, projectID, usdcAmount *big.Int) (*types.Transaction, error) {
	tx, err := d.contract.Transact(opts, "purchaseTokens", projectID, usdcAmount)
	if err != nil {
		return nil, fmt.Errorf("purchaseTokens: %w", err)
	}
	return tx, nil
}

func (d *PrimaryDistribution) GetSale(ctx context.Context, projectID *big.Int) (Sale, error) {
	var out []interface{}
	if err := d.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getSale", projectID); err != nil {
		return Sale{}, fmt.Errorf("getSale %s: %w", projectID, err)
	}
	return Sale{
		Token:             *abi.ConvertType(out[0], new(common.Address)).(*common.Address),
		PricePerTokenUSDC: *abi.ConvertType(out[1], new(*big.Int)).(**big.Int),
		TokensRemaining:   *abi.ConvertType(out[2], new(*big.Int)).(**big.Int),
		Active:            *abi.ConvertType(out[3], new(bool)).(*bool),
	}, nil
}
