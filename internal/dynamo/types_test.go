package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.8, 1.0, 0, 0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Norm(t *testing.T) {
	tests := []struct {
		state    State
		expected Real
	}{
		{State{3, 4}, 5.0},
		{State{1, 0}, 1.0},
		{State{0, 0}, 0.0},
		{State{1, 1, 1, 1}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.state.Norm(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.state, got, tt.expected)
		}
	}
}

func TestState_CloneIsIndependent(t *testing.T) {
	a := State{1, 2, 3}
	b := a.Clone()
	b[0] = 99

	if a[0] != 1 {
		t.Errorf("clone must not alias the original, a[0]=%v", a[0])
	}
}

func TestState_Sub(t *testing.T) {
	a := State{3, 5, 7}
	b := State{1, 1, 1}

	d := a.Sub(b)
	want := State{2, 4, 6}
	for i := range want {
		if d[i] != want[i] {
			t.Errorf("Sub[%d] = %v, want %v", i, d[i], want[i])
		}
	}
}

func TestSimulationError_Unwrap(t *testing.T) {
	err := &SimulationError{Step: 42, Time: 0.42, Wrapped: ErrInvalidState}

	if !errors.Is(err, ErrInvalidState) {
		t.Error("expected errors.Is to see through the wrapper")
	}
	if err.Error() != ErrInvalidState.Error() {
		t.Errorf("unexpected message %q", err.Error())
	}
}
