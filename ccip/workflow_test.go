package ccip

import (
	"reflect"
	"testing"
)

func TestSummarize(t *testing.T) {
	cases := []struct {
		name  string
		steps []StepReport
		want  string
	}{
		{
			"all_success",
			[]StepReport{{Status: StatusSuccess}, {Status: StatusSuccess}},
			StatusSuccess,
		},
		{
			"all_failed",
			[]StepReport{{Status: StatusFailed}, {Status: StatusFailed}},
			StatusFailed,
		},
		{
			"mixed",
			[]StepReport{{Status: StatusSuccess}, {Status: StatusFailed}},
			StatusPartial,
		},
		{
			"skips_do_not_fail",
			[]StepReport{{Status: StatusSuccess}, {Status: StatusSkipped}},
			StatusSuccess,
		},
		{
			"skipped_plus_failed",
			[]StepReport{{Status: StatusSkipped}, {Status: StatusFailed}},
			StatusFailed,
		},
		{
			"empty",
			nil,
			StatusSuccess,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Summarize(tc.steps); got != tc.want {
				t.Fatalf("Summarize = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestFailedSteps(t *testing.T) {
	steps := []StepReport{
		{Name: StepDeployPool, Status: StatusSuccess},
		{Name: StepGrantRoles, Status: StatusFailed},
		{Name: StepRegisterAdmin, Status: StatusSkipped},
		{Name: StepConnectChain, Status: StatusFailed},
	}
	got := FailedSteps(steps)
	want := []string{StepGrantRoles, StepConnectChain}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FailedSteps = %v, want %v", got, want)
	}

	if FailedSteps(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestRemoteNetworkName(t *testing.T) {
	if got := remoteNetworkName(16015286601757825753); got != "ethereumSepolia" {
		t.Fatalf("remoteNetworkName = %q, want ethereumSepolia", got)
	}
	if got := remoteNetworkName(42); got != "" {
		t.Fatalf("unknown selector should resolve empty, got %q", got)
	}
}

func TestValidationReportHealthy(t *testing.T) {
	healthy := ValidationReport{
		PoolMatches:     true,
		RemoteSupported: true,
		RemoteTokenOK:   true,
		PoolHasMintRole: true,
		PoolHasBurnRole: true,
	}
	if !healthy.Healthy() {
		t.Fatal("expected healthy report")
	}

	for _, mutate := range []func(*ValidationReport){
		func(r *ValidationReport) { r.PoolMatches = false },
		func(r *ValidationReport) { r.RemoteSupported = false },
		func(r *ValidationReport) { r.RemoteTokenOK = false },
		func(r *ValidationReport) { r.PoolHasMintRole = false },
		func(r *ValidationReport) { r.PoolHasBurnRole = false },
	} {
		r := healthy
		mutate(&r)
		if r.Healthy() {
			t.Fatalf("expected unhealthy report: %+v", r)
		}
	}
}
