package dynamo

import (
	"fmt"
	"math"
)

// Real is the scalar type used throughout the physics core. Changing the
// alias rebuilds the core at a different floating-point precision.
type Real = float64

type State []Real

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() Real {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous ODE: dX/dt = f(X, t).
type System interface {
	Derive(x State, t Real) State
	StateDim() int
}

// Hamiltonian systems expose their total mechanical energy so drift can be
// tracked across a run.
type Hamiltonian interface {
	Energy(x State) Real
}

type Integrator interface {
	Step(dyn System, x State, t Real, dt Real) State
}

type Metric interface {
	Name() string
	Observe(x State, t Real)
	Value() Real
	Reset()
}

type Observer interface {
	OnStep(x State, t Real)
}

type Configurable interface {
	GetParams() map[string]Real
	SetParam(name string, value Real) error
}

type Config struct {
	Dt            Real
	Duration      Real
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		ValidateState: true,
	}
}

type Result struct {
	States      []State
	Times       []Real
	Metrics     map[string]Real
	EnergyDrift Real
	StepsTaken  int
	Errors      []error
}

type SimError struct {
	Time    Real
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
