package ccip

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// scriptedSteps replays configured outcomes and records which steps ran.
type scriptedSteps struct {
	pool        common.Address
	deployErr   error
	grantErr    error
	registerErr error
	connectErr  error
	report      ValidationReport
	checkErr    error

	calls []string
}

func (s *scriptedSteps) DeployPool(ctx context.Context, token common.Address) (common.Address, string, error) {
	s.calls = append(s.calls, StepDeployPool)
	if s.deployErr != nil {
		return common.Address{}, "", s.deployErr
	}
	return s.pool, "0xd1", nil
}

func (s *scriptedSteps) GrantPoolRoles(ctx context.Context, token, pool common.Address) ([]string, error) {
	s.calls = append(s.calls, StepGrantRoles)
	if s.grantErr != nil {
		return nil, s.grantErr
	}
	return []string{"0xg1", "0xg2"}, nil
}

func (s *scriptedSteps) RegisterAdmin(ctx context.Context, token, pool common.Address) ([]string, error) {
	s.calls = append(s.calls, StepRegisterAdmin)
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return []string{"0xr1", "0xr2", "0xr3"}, nil
}

func (s *scriptedSteps) ConnectChain(ctx context.Context, pool common.Address, remote RemoteLink) (string, error) {
	s.calls = append(s.calls, StepConnectChain)
	if s.connectErr != nil {
		return "", s.connectErr
	}
	return "0xc1", nil
}

func (s *scriptedSteps) checkSide(ctx context.Context, token, pool common.Address, remote RemoteLink) (ValidationReport, error) {
	s.calls = append(s.calls, StepValidate)
	return s.report, s.checkErr
}

func healthyReport() ValidationReport {
	return ValidationReport{
		PoolMatches:     true,
		RemoteSupported: true,
		RemoteTokenOK:   true,
		PoolHasMintRole: true,
		PoolHasBurnRole: true,
	}
}

func stepByName(t *testing.T, result SetupResult, name string) StepReport {
	t.Helper()
	for _, s := range result.Steps {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("step %s missing from result", name)
	return StepReport{}
}

func TestSetupSequence(t *testing.T) {
	ctx := context.Background()
	token := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	pool := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	remote := &RemoteLink{
		ChainSelector: 16015286601757825753,
		Pool:          common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Token:         common.HexToAddress("0x2222222222222222222222222222222222222222"),
	}

	t.Run("all_steps_succeed", func(t *testing.T) {
		steps := &scriptedSteps{pool: pool, report: healthyReport()}
		result := runSetup(ctx, steps, zap.NewNop(), token, remote)

		if result.Status != StatusSuccess {
			t.Fatalf("status = %s, want %s", result.Status, StatusSuccess)
		}
		if result.PoolAddress != pool.Hex() {
			t.Fatalf("pool address = %s", result.PoolAddress)
		}
		if len(result.Steps) != 5 {
			t.Fatalf("expected 5 step reports, got %d", len(result.Steps))
		}
		for _, s := range result.Steps {
			if s.Status != StatusSuccess {
				t.Errorf("step %s = %s", s.Name, s.Status)
			}
		}
		want := []string{StepDeployPool, StepGrantRoles, StepRegisterAdmin, StepConnectChain, StepValidate}
		if len(steps.calls) != len(want) {
			t.Fatalf("calls = %v, want %v", steps.calls, want)
		}
		for i, name := range want {
			if steps.calls[i] != name {
				t.Fatalf("calls = %v, want %v", steps.calls, want)
			}
		}
	})

	t.Run("deploy_failure_skips_dependents", func(t *testing.T) {
		steps := &scriptedSteps{deployErr: errors.New("factory reverted")}
		result := runSetup(ctx, steps, zap.NewNop(), token, remote)

		if result.Status != StatusFailed {
			t.Fatalf("status = %s, want %s", result.Status, StatusFailed)
		}
		if result.PoolAddress != "" {
			t.Fatalf("pool address should be empty, got %s", result.PoolAddress)
		}
		if got := stepByName(t, result, StepDeployPool); got.Status != StatusFailed {
			t.Fatalf("deploy step = %s", got.Status)
		}
		for _, name := range []string{StepGrantRoles, StepRegisterAdmin, StepConnectChain, StepValidate} {
			got := stepByName(t, result, name)
			if got.Status != StatusSkipped {
				t.Errorf("step %s = %s, want %s", name, got.Status, StatusSkipped)
			}
			if got.Detail != "no pool address" {
				t.Errorf("step %s detail = %q", name, got.Detail)
			}
		}
		if len(steps.calls) != 1 {
			t.Fatalf("only deploy should run, got %v", steps.calls)
		}
	})

	t.Run("grant_failure_continues", func(t *testing.T) {
		steps := &scriptedSteps{pool: pool, grantErr: errors.New("grantRole reverted"), report: healthyReport()}
		result := runSetup(ctx, steps, zap.NewNop(), token, remote)

		if result.Status != StatusPartial {
			t.Fatalf("status = %s, want %s", result.Status, StatusPartial)
		}
		if got := stepByName(t, result, StepGrantRoles); got.Status != StatusFailed {
			t.Fatalf("grant step = %s", got.Status)
		}
		// Later steps still run with the pool address.
		if got := stepByName(t, result, StepRegisterAdmin); got.Status != StatusSuccess {
			t.Fatalf("register step = %s", got.Status)
		}
		if got := stepByName(t, result, StepConnectChain); got.Status != StatusSuccess {
			t.Fatalf("connect step = %s", got.Status)
		}
		failed := FailedSteps(result.Steps)
		if len(failed) != 1 || failed[0] != StepGrantRoles {
			t.Fatalf("failed steps = %v", failed)
		}
	})

	t.Run("no_remote_skips_connect", func(t *testing.T) {
		steps := &scriptedSteps{pool: pool, report: healthyReport()}
		result := runSetup(ctx, steps, zap.NewNop(), token, nil)

		got := stepByName(t, result, StepConnectChain)
		if got.Status != StatusSkipped {
			t.Fatalf("connect step = %s, want %s", got.Status, StatusSkipped)
		}
		if !strings.Contains(got.Detail, "asetta_connect_ccip_chains") {
			t.Fatalf("skip detail should name the follow-up tool, got %q", got.Detail)
		}
		// Validation passes without a remote side to check.
		if got := stepByName(t, result, StepValidate); got.Status != StatusSuccess {
			t.Fatalf("validate step = %s", got.Status)
		}
		if result.Status != StatusSuccess {
			t.Fatalf("status = %s, want %s", result.Status, StatusSuccess)
		}
		for _, call := range steps.calls {
			if call == StepConnectChain {
				t.Fatal("connect must not run without a remote side")
			}
		}
	})

	t.Run("unhealthy_readback_fails_validate", func(t *testing.T) {
		report := healthyReport()
		report.RemoteSupported = false
		steps := &scriptedSteps{pool: pool, report: report}
		result := runSetup(ctx, steps, zap.NewNop(), token, remote)

		got := stepByName(t, result, StepValidate)
		if got.Status != StatusFailed {
			t.Fatalf("validate step = %s, want %s", got.Status, StatusFailed)
		}
		if result.Status != StatusPartial {
			t.Fatalf("status = %s, want %s", result.Status, StatusPartial)
		}
	})
}
