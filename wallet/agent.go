package wallet

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"asetta-mcp/chains"
)

const nativeTransferGas = 21000

// Agent binds an RPC client and the signing account to one network. Tools
// dial a fresh agent per invocation so the active network can change between
// calls without process-wide state.
type Agent struct {
	net     chains.Network
	client  *ethclient.Client
	account *Account
	log     *zap.Logger
}

// Dial connects to the network's RPC endpoint and returns a bound agent.
func Dial(ctx context.Context, net chains.Network, account *Account, log *zap.Logger) (*Agent, error) {
	client, err := ethclient.DialContext(ctx, net.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connect to %s rpc: %w", net.Key, err)
	}
	return &Agent{net: net, client: client, account: account, log: log}, nil
}

// Close releases the RPC connection.
func (a *Agent) Close() {
	a.client.Close()
	a.log.Debug("rpc client disconnected", zap.String("network", string(a.net.Key)))
}

// Network returns the network this agent is bound to.
func (a *Agent) Network() chains.Network {
	return a.net
}

// Client exposes the underlying RPC client for contract bindings.
func (a *Agent) Client() *ethclient.Client {
	return a.client
}

// Account returns the signing account.
func (a *Agent) Account() *Account {
	return a.account
}

// Address returns the signer's address.
func (a *Agent) Address() common.Address {
	return a.account.Address
}

// TransactOpts builds signed transaction options for the bound chain.
func (a *Agent) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(a.account.PrivateKey(), big.NewInt(a.net.ChainID))
	if err != nil {
		return nil, fmt.Errorf("build transactor for chain %d: %w", a.net.ChainID, err)
	}
	opts.Context = ctx
	return opts, nil
}

// NativeBalance reads the native coin balance at the latest block.
func (a *Agent) NativeBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	balance, err := a.client.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("get native balance: %w", err)
	}
	return balance, nil
}

// TransferNative sends native currency to the recipient and returns the
// submitted transaction.
func (a *Agent) TransferNative(ctx context.Context, to common.Address, amountWei *big.Int) (*types.Transaction, error) {
	nonce, err := a.client.PendingNonceAt(ctx, a.account.Address)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}
	gasPrice, err := a.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, to, amountWei, nativeTransferGas, gasPrice, nil)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(a.net.ChainID)), a.account.PrivateKey())
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	if err := a.client.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}
	a.log.Info("native transfer submitted",
		zap.String("network", string(a.net.Key)),
		zap.String("to", to.Hex()),
		zap.String("tx", signed.Hash().Hex()))
	return signed, nil
}

// WaitMined blocks until the transaction is mined and checks the receipt
// status. Reverted transactions come back as errors with the explorer link.
func (a *Agent) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, a.client, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for tx %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("transaction reverted: %s", a.net.TxURL(tx.Hash().Hex()))
	}
	return receipt, nil
}

// Receipt looks up the receipt of an already submitted transaction.
func (a *Agent) Receipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	receipt, err := a.client.TransactionReceipt(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("get receipt for %s: %w", txHash.Hex(), err)
	}
	return receipt, nil
}

// waitCtx bounds receipt waits so a stuck RPC endpoint cannot hang the tool
// invocation forever.
func waitCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 3*time.Minute)
}

// SubmitAndWait is the common write path: submit, wait, report.
func (a *Agent) SubmitAndWait(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	wctx, cancel := waitCtx(ctx)
	defer cancel()
	return a.WaitMined(wctx, tx)
}
