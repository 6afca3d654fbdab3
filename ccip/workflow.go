// Package ccip drives the cross-chain setup of an RWA token: deploy the
// burn/mint pool, grant it roles on the token, register the token admin,
// connect the remote chain, then read everything back. The sequence is fixed
// and each step is attempted even when an earlier one failed, so a partially
// configured project reports exactly which steps need a retry.
package ccip

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"asetta-mcp/chains"
	"asetta-mcp/contracts"
	"asetta-mcp/wallet"
)

// Step names in execution order.
const (
	StepDeployPool    = "deploy_pool"
	StepGrantRoles    = "grant_roles"
	StepRegisterAdmin = "register_admin"
	StepConnectChain  = "connect_chain"
	StepValidate      = "validate"
)

// Step statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
	StatusPartial = "partial"
)

// StepReport records the outcome of one workflow step.
type StepReport struct {
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	TxHashes []string `json:"tx_hashes,omitempty"`
	Detail   string   `json:"detail,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// SetupResult is the aggregate outcome of a full or partial setup run.
type SetupResult struct {
	Status      string       `json:"status"`
	PoolAddress string       `json:"pool_address,omitempty"`
	Steps       []StepReport `json:"steps"`
}

// Summarize folds step outcomes into an overall status: success when every
// step succeeded, partial when at least one did, failed otherwise.
func Summarize(steps []StepReport) string {
	succeeded, failed := 0, 0
	for _, s := range steps {
		switch s.Status {
		case StatusSuccess:
			succeeded++
		case StatusFailed:
			failed++
		}
	}
	switch {
	case failed == 0:
		return StatusSuccess
	case succeeded == 0:
		return StatusFailed
	default:
		return StatusPartial
	}
}

// FailedSteps lists the names of steps that failed, for retry guidance.
func FailedSteps(steps []StepReport) []string {
	var out []string
	for _, s := range steps {
		if s.Status == StatusFailed {
			out = append(out, s.Name)
		}
	}
	return out
}

// RemoteLink identifies the counterparty side of a cross-chain connection.
type RemoteLink struct {
	ChainSelector uint64
	Pool          common.Address
	Token         common.Address
}

// Workflow runs CCIP setup steps against one chain through a wallet agent.
type Workflow struct {
	agent *wallet.Agent
	log   *zap.Logger
}

func NewWorkflow(agent *wallet.Agent, log *zap.Logger) *Workflow {
	return &Workflow{agent: agent, log: log}
}

// DeployPool asks the token factory to deploy a BurnMintTokenPool for the
// token and returns the pool address read from the deployment event.
func (w *Workflow) DeployPool(ctx context.Context, token common.Address) (common.Address, string, error) {
	net := w.agent.Network()
	factory := contracts.NewTokenFactory(common.HexToAddress(net.Contracts.TokenFactory), w.agent.Client())

	opts, err := w.agent.TransactOpts(ctx)
	if err != nil {
		return common.Address{}, "", err
	}
	tx, err := factory.DeployCCIPPool(opts, token,
		common.HexToAddress(net.Chainlink.RMNProxy),
		common.HexToAddress(net.Chainlink.Router))
	if err != nil {
		return common.Address{}, "", err
	}
	receipt, err := w.agent.SubmitAndWait(ctx, tx)
	if err != nil {
		return common.Address{}, tx.Hash().Hex(), err
	}
	pool, err := factory.ParsePoolDeployed(receipt)
	if err != nil {
		return common.Address{}, tx.Hash().Hex(), err
	}

	w.log.Info("ccip pool deployed",
		zap.String("network", string(net.Key)),
		zap.String("token", token.Hex()),
		zap.String("pool", pool.Hex()))
	return pool, tx.Hash().Hex(), nil
}

// GrantPoolRoles gives the pool mint and burn rights on the token.
func (w *Workflow) GrantPoolRoles(ctx context.Context, token, pool common.Address) ([]string, error) {
	rwaToken := contracts.NewRWAToken(token, w.agent.Client())
	var hashes []string

	for _, role := range []common.Hash{contracts.MinterRole, contracts.BurnerRole} {
		opts, err := w.agent.TransactOpts(ctx)
		if err != nil {
			return hashes, err
		}
		tx, err := rwaToken.GrantRole(opts, role, pool)
		if err != nil {
			return hashes, err
		}
		hashes = append(hashes, tx.Hash().Hex())
		if _, err := w.agent.SubmitAndWait(ctx, tx); err != nil {
			return hashes, err
		}
	}
	return hashes, nil
}

// RegisterAdmin claims the CCIP token admin role for the signer and points
// the registry at the pool: registerAdminViaOwner, acceptAdminRole, setPool.
func (w *Workflow) RegisterAdmin(ctx context.Context, token, pool common.Address) ([]string, error) {
	net := w.agent.Network()
	module := contracts.NewRegistryModuleOwnerCustom(common.HexToAddress(net.Chainlink.RegistryModuleOwner), w.agent.Client())
	registry := contracts.NewTokenAdminRegistry(common.HexToAddress(net.Chainlink.TokenAdminRegistry), w.agent.Client())
	var hashes []string

	submit := func(build func() (txHash string, err error)) error {
		hash, err := build()
		if hash != "" {
			hashes = append(hashes, hash)
		}
		return err
	}

	if err := submit(func() (string, error) {
		opts, err := w.agent.TransactOpts(ctx)
		if err != nil {
			return "", err
		}
		tx, err := module.RegisterAdminViaOwner(opts, token)
		if err != nil {
			return "", err
		}
		_, err = w.agent.SubmitAndWait(ctx, tx)
		return tx.Hash().Hex(), err
	}); err != nil {
		return hashes, fmt.Errorf("registerAdminViaOwner: %w", err)
	}

	if err := submit(func() (string, error) {
		opts, err := w.agent.TransactOpts(ctx)
		if err != nil {
			return "", err
		}
		tx, err := registry.AcceptAdminRole(opts, token)
		if err != nil {
			return "", err
		}
		_, err = w.agent.SubmitAndWait(ctx, tx)
		return tx.Hash().Hex(), err
	}); err != nil {
		return hashes, fmt.Errorf("acceptAdminRole: %w", err)
	}

	if err := submit(func() (string, error) {
		opts, err := w.agent.TransactOpts(ctx)
		if err != nil {
			return "", err
		}
		tx, err := registry.SetPool(opts, token, pool)
		if err != nil {
			return "", err
		}
		_, err = w.agent.SubmitAndWait(ctx, tx)
		return tx.Hash().Hex(), err
	}); err != nil {
		return hashes, fmt.Errorf("setPool: %w", err)
	}

	return hashes, nil
}

// checkSide reads back this chain's half of the link.
func (w *Workflow) checkSide(ctx context.Context, token, pool common.Address, remote RemoteLink) (ValidationReport, error) {
	return sideCheck(ctx, w.agent, token, pool, remote)
}

// ConnectChain applies a chain update linking the local pool to the remote
// pool/token.
func (w *Workflow) ConnectChain(ctx context.Context, pool common.Address, remote RemoteLink) (string, error) {
	poolContract := contracts.NewBurnMintTokenPool(pool, w.agent.Client())
	update := contracts.NewChainUpdate(remote.ChainSelector, remote.Pool, remote.Token)

	opts, err := w.agent.TransactOpts(ctx)
	if err != nil {
		return "", err
	}
	tx, err := poolContract.ApplyChainUpdates(opts, nil, []contracts.ChainUpdate{update})
	if err != nil {
		return "", err
	}
	if _, err := w.agent.SubmitAndWait(ctx, tx); err != nil {
		return tx.Hash().Hex(), err
	}
	return tx.Hash().Hex(), nil
}

// ValidationReport captures the read-back state of one side of a connection.
type ValidationReport struct {
	Network         string `json:"network"`
	Pool            string `json:"pool"`
	RegisteredPool  string `json:"registered_pool"`
	PoolMatches     bool   `json:"pool_matches"`
	RemoteNetwork   string `json:"remote_network,omitempty"`
	RemoteSupported bool   `json:"remote_supported"`
	RemoteTokenOK   bool   `json:"remote_token_ok"`
	PoolHasMintRole bool   `json:"pool_has_mint_role"`
	PoolHasBurnRole bool   `json:"pool_has_burn_role"`
}

// remoteNetworkName resolves a chain selector to its network key. Selectors
// outside the supported set come back empty, not as an error; the report
// still carries the raw read-back results.
func remoteNetworkName(selector uint64) string {
	net, err := chains.BySelector(selector)
	if err != nil {
		return ""
	}
	return string(net.Key)
}

// sideCheck validates one chain's half of the link.
func sideCheck(ctx context.Context, agent *wallet.Agent, token, pool common.Address, remote RemoteLink) (ValidationReport, error) {
	net := agent.Network()
	report := ValidationReport{
		Network:       string(net.Key),
		Pool:          pool.Hex(),
		RemoteNetwork: remoteNetworkName(remote.ChainSelector),
	}

	registry := contracts.NewTokenAdminRegistry(common.HexToAddress(net.Chainlink.TokenAdminRegistry), agent.Client())
	registered, err := registry.GetPool(ctx, token)
	if err != nil {
		return report, err
	}
	report.RegisteredPool = registered.Hex()
	report.PoolMatches = registered == pool

	poolContract := contracts.NewBurnMintTokenPool(pool, agent.Client())
	supported, err := poolContract.IsSupportedChain(ctx, remote.ChainSelector)
	if err != nil {
		return report, err
	}
	report.RemoteSupported = supported

	remoteToken, err := poolContract.GetRemoteToken(ctx, remote.ChainSelector)
	if err != nil {
		return report, err
	}
	report.RemoteTokenOK = contracts.DecodeRemoteAddress(remoteToken) == remote.Token

	rwaToken := contracts.NewRWAToken(token, agent.Client())
	if report.PoolHasMintRole, err = rwaToken.HasRole(ctx, contracts.MinterRole, pool); err != nil {
		return report, err
	}
	if report.PoolHasBurnRole, err = rwaToken.HasRole(ctx, contracts.BurnerRole, pool); err != nil {
		return report, err
	}
	return report, nil
}

// Validate reads back both halves of a cross-chain link concurrently.
func Validate(ctx context.Context, local, remote *wallet.Agent, localToken, localPool, remoteToken, remotePool common.Address) (ValidationReport, ValidationReport, error) {
	var localReport, remoteReport ValidationReport

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		localReport, err = sideCheck(gctx, local, localToken, localPool, RemoteLink{
			ChainSelector: remote.Network().Chainlink.ChainSelector,
			Pool:          remotePool,
			Token:         remoteToken,
		})
		return err
	})
	g.Go(func() error {
		var err error
		remoteReport, err = sideCheck(gctx, remote, remoteToken, remotePool, RemoteLink{
			ChainSelector: local.Network().Chainlink.ChainSelector,
			Pool:          localPool,
			Token:         localToken,
		})
		return err
	})
	err := g.Wait()
	return localReport, remoteReport, err
}

// Healthy reports whether a validation side looks fully configured.
func (r ValidationReport) Healthy() bool {
	return r.PoolMatches && r.RemoteSupported && r.RemoteTokenOK && r.PoolHasMintRole && r.PoolHasBurnRole
}
