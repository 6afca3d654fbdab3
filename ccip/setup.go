package ccip

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// setupSteps is the surface the setup sequence drives. Workflow implements
// it against a live chain.
type setupSteps interface {
	DeployPool(ctx context.Context, token common.Address) (common.Address, string, error)
	GrantPoolRoles(ctx context.Context, token, pool common.Address) ([]string, error)
	RegisterAdmin(ctx context.Context, token, pool common.Address) ([]string, error)
	ConnectChain(ctx context.Context, pool common.Address, remote RemoteLink) (string, error)
	checkSide(ctx context.Context, token, pool common.Address, remote RemoteLink) (ValidationReport, error)
}

// Setup runs the full configuration sequence on the local chain. Steps after
// a failed one still run where their inputs exist; steps that depend on a
// missing pool address are skipped. There is no rollback; partially
// configured state is reported, not undone.
func (w *Workflow) Setup(ctx context.Context, token common.Address, remote *RemoteLink) SetupResult {
	return runSetup(ctx, w, w.log, token, remote)
}

func runSetup(ctx context.Context, steps setupSteps, log *zap.Logger, token common.Address, remote *RemoteLink) SetupResult {
	var reports []StepReport
	var pool common.Address

	// Step 1: deploy the pool.
	deployedPool, txHash, err := steps.DeployPool(ctx, token)
	step := StepReport{Name: StepDeployPool}
	if txHash != "" {
		step.TxHashes = []string{txHash}
	}
	if err != nil {
		step.Status = StatusFailed
		step.Error = err.Error()
		log.Warn("ccip setup step failed", zap.String("step", StepDeployPool), zap.Error(err))
	} else {
		step.Status = StatusSuccess
		step.Detail = "pool " + deployedPool.Hex()
		pool = deployedPool
	}
	reports = append(reports, step)

	havePool := pool != (common.Address{})

	// Step 2: grant mint/burn roles to the pool.
	step = StepReport{Name: StepGrantRoles}
	if !havePool {
		step.Status = StatusSkipped
		step.Detail = "no pool address"
	} else if hashes, err := steps.GrantPoolRoles(ctx, token, pool); err != nil {
		step.Status = StatusFailed
		step.TxHashes = hashes
		step.Error = err.Error()
		log.Warn("ccip setup step failed", zap.String("step", StepGrantRoles), zap.Error(err))
	} else {
		step.Status = StatusSuccess
		step.TxHashes = hashes
	}
	reports = append(reports, step)

	// Step 3: register the token admin and point the registry at the pool.
	step = StepReport{Name: StepRegisterAdmin}
	if !havePool {
		step.Status = StatusSkipped
		step.Detail = "no pool address"
	} else if hashes, err := steps.RegisterAdmin(ctx, token, pool); err != nil {
		step.Status = StatusFailed
		step.TxHashes = hashes
		step.Error = err.Error()
		log.Warn("ccip setup step failed", zap.String("step", StepRegisterAdmin), zap.Error(err))
	} else {
		step.Status = StatusSuccess
		step.TxHashes = hashes
	}
	reports = append(reports, step)

	// Step 4: connect the remote chain, when the remote side is known.
	step = StepReport{Name: StepConnectChain}
	switch {
	case remote == nil:
		step.Status = StatusSkipped
		step.Detail = "remote side not provided; run asetta_connect_ccip_chains after the remote pool exists"
	case !havePool:
		step.Status = StatusSkipped
		step.Detail = "no pool address"
	default:
		if hash, err := steps.ConnectChain(ctx, pool, *remote); err != nil {
			step.Status = StatusFailed
			if hash != "" {
				step.TxHashes = []string{hash}
			}
			step.Error = err.Error()
			log.Warn("ccip setup step failed", zap.String("step", StepConnectChain), zap.Error(err))
		} else {
			step.Status = StatusSuccess
			step.TxHashes = []string{hash}
		}
	}
	reports = append(reports, step)

	// Step 5: read the local configuration back.
	step = StepReport{Name: StepValidate}
	if !havePool {
		step.Status = StatusSkipped
		step.Detail = "no pool address"
	} else {
		link := RemoteLink{}
		if remote != nil {
			link = *remote
		}
		report, err := steps.checkSide(ctx, token, pool, link)
		if err != nil {
			step.Status = StatusFailed
			step.Error = err.Error()
		} else if remote != nil && !report.Healthy() {
			step.Status = StatusFailed
			step.Detail = "configuration incomplete; see validation report"
			step.Error = "read-back checks failed"
		} else {
			step.Status = StatusSuccess
			if report.PoolMatches {
				step.Detail = "registry points at the pool"
			}
		}
	}
	reports = append(reports, step)

	result := SetupResult{Status: Summarize(reports), Steps: reports}
	if havePool {
		result.PoolAddress = pool.Hex()
	}
	return result
}
