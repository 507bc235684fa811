package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pendlab/internal/dynamo"
	"github.com/san-kum/pendlab/internal/integrators"
	"github.com/san-kum/pendlab/internal/metrics"
	"github.com/san-kum/pendlab/internal/physics"
	"github.com/san-kum/pendlab/internal/trail"
)

func newPendulumSim() (*Simulator, dynamo.State) {
	dp := physics.NewDoublePendulum()
	s := New(dp, integrators.NewRK4())
	return s, dynamo.State{1.8, 1.0, 0, 0}
}

func TestRunBasic(t *testing.T) {
	s, x0 := newPendulumSim()

	result, err := s.Run(context.Background(), x0, dynamo.Config{Dt: 0.01, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.StepsTaken != 100 {
		t.Errorf("expected 100 steps, got %d", result.StepsTaken)
	}
	if len(result.States) != 101 {
		t.Errorf("expected 101 states (initial + steps), got %d", len(result.States))
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected sim errors: %v", result.Errors)
	}
	if result.EnergyDrift > 1e-4 {
		t.Errorf("energy drift too large: %e", result.EnergyDrift)
	}
}

func TestRunDimensionMismatch(t *testing.T) {
	s, _ := newPendulumSim()

	_, err := s.Run(context.Background(), dynamo.State{1, 2}, dynamo.Config{Dt: 0.01, Duration: 1.0})
	if !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	s, x0 := newPendulumSim()

	cases := []struct {
		name string
		cfg  dynamo.Config
	}{
		{"zero dt", dynamo.Config{Dt: 0, Duration: 1}},
		{"negative dt", dynamo.Config{Dt: -0.01, Duration: 1}},
		{"zero duration", dynamo.Config{Dt: 0.01, Duration: 0}},
		{"negative duration", dynamo.Config{Dt: 0.01, Duration: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), x0, tc.cfg); err == nil {
				t.Error("expected config validation error")
			}
		})
	}
}

func TestRunContextCancel(t *testing.T) {
	s, x0 := newPendulumSim()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, x0, dynamo.Config{Dt: 0.01, Duration: 10.0})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunRecordsMetrics(t *testing.T) {
	dp := physics.NewDoublePendulum()
	s := New(dp, integrators.NewRK4())
	s.AddMetric(metrics.NewEnergyDrift(dp))
	s.AddMetric(metrics.NewExcursion())

	result, err := s.Run(context.Background(), dynamo.State{1.8, 1.0, 0, 0}, dynamo.Config{Dt: 0.01, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := result.Metrics["energy_drift"]; !ok {
		t.Error("missing energy_drift metric")
	}
	maxAngle, ok := result.Metrics["max_angle"]
	if !ok {
		t.Fatal("missing max_angle metric")
	}
	if maxAngle < 1.8 {
		t.Errorf("max angle should include the initial 1.8, got %f", maxAngle)
	}
}

func TestTrailFedOncePerStep(t *testing.T) {
	s, x0 := newPendulumSim()

	ring := trail.NewRing(1024)
	s.AttachTrail(ring)

	result, err := s.Run(context.Background(), x0, dynamo.Config{Dt: 0.01, Duration: 0.5, ValidateState: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ring.Len() != result.StepsTaken {
		t.Errorf("expected one trail point per step: %d points, %d steps", ring.Len(), result.StepsTaken)
	}
}

func TestTrailStaysBounded(t *testing.T) {
	s, x0 := newPendulumSim()

	ring := trail.NewRing(64)
	s.AttachTrail(ring)

	if _, err := s.Run(context.Background(), x0, dynamo.Config{Dt: 0.01, Duration: 5.0, ValidateState: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ring.Len() != 64 {
		t.Errorf("expected trail capped at 64, got %d", ring.Len())
	}
}

func TestWriteBackKeepsLinksInStep(t *testing.T) {
	dp := physics.NewDoublePendulum()
	s := New(dp, integrators.NewRK4())

	result, err := s.Run(context.Background(), dynamo.State{1.8, 1.0, 0, 0}, dynamo.Config{Dt: 0.01, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	final := result.States[len(result.States)-1]
	live := dp.StateVector()
	for i := range final {
		if final[i] != live[i] {
			t.Errorf("live fields out of step at component %d: %v vs %v", i, live[i], final[i])
		}
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	s, x0 := newPendulumSim()

	calls := 0
	err := s.RunWithCallback(context.Background(), x0, dynamo.Config{Dt: 0.01, Duration: 10.0, ValidateState: true},
		func(x dynamo.State, t dynamo.Real) bool {
			calls++
			return calls < 10
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 10 {
		t.Errorf("expected callback to stop the run after 10 calls, got %d", calls)
	}
}

func TestEnsembleDivergence(t *testing.T) {
	ens := NewEnsemble(func() (dynamo.System, dynamo.Integrator) {
		return physics.NewDoublePendulum(), integrators.NewRK4()
	}, 2, 0.01)

	results, err := ens.Run(context.Background(), dynamo.State{1.8, 1.0, 0, 0}, dynamo.Config{Dt: 0.01, Duration: 10.0, ValidateState: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	a, b := results[0], results[1]
	initialSep := a.States[0].Sub(b.States[0]).Norm()
	finalSep := a.States[len(a.States)-1].Sub(b.States[len(b.States)-1]).Norm()

	if math.Abs(initialSep-0.01) > 1e-12 {
		t.Errorf("expected initial separation 0.01, got %f", initialSep)
	}
	// Chaotic regime: nearby trajectories separate by orders of magnitude
	// over 10 seconds.
	if finalSep < 10*initialSep {
		t.Errorf("expected divergence, separation went %f -> %f", initialSep, finalSep)
	}
}

func TestEnsembleRunsAreIndependent(t *testing.T) {
	ens := NewEnsemble(func() (dynamo.System, dynamo.Integrator) {
		return physics.NewDoublePendulum(), integrators.NewRK4()
	}, 4, 0)

	results, err := ens.Run(context.Background(), dynamo.State{1.8, 1.0, 0, 0}, dynamo.Config{Dt: 0.01, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Zero perturbation: every run must be bit-identical.
	base := results[0].States[len(results[0].States)-1]
	for i := 1; i < len(results); i++ {
		final := results[i].States[len(results[i].States)-1]
		for j := range base {
			if final[j] != base[j] {
				t.Errorf("run %d diverged at component %d: %v vs %v", i, j, final[j], base[j])
			}
		}
	}
}
