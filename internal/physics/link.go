package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/pendlab/internal/dynamo"
)

const (
	DefaultMass    = 1.0
	DefaultLength  = 1.0
	DefaultGravity = 9.78
)

// Link is one rigid rod of the double pendulum. Theta is measured from
// vertical (0 = straight down) and is never normalized modulo 2π; Length
// and Mass are constant for a run and must be positive (construction-time
// contract, not re-checked per tick).
type Link struct {
	Length dynamo.Real
	Mass   dynamo.Real
	Theta  dynamo.Real
	Omega  dynamo.Real
}

// DoublePendulum is two links under uniform gravity: A hinged to a fixed
// pivot, B hinged to the free end of A.
type DoublePendulum struct {
	A, B Link
	G    dynamo.Real
}

func NewDoublePendulum() *DoublePendulum {
	return &DoublePendulum{
		A: Link{Length: DefaultLength, Mass: DefaultMass},
		B: Link{Length: DefaultLength, Mass: DefaultMass},
		G: DefaultGravity,
	}
}

func (d *DoublePendulum) StateDim() int { return 4 }

// StateVector packs the link fields into the (θA, θB, ωA, ωB) 4-vector the
// integrator operates on.
func (d *DoublePendulum) StateVector() dynamo.State {
	return dynamo.State{d.A.Theta, d.B.Theta, d.A.Omega, d.B.Omega}
}

// SetState writes a 4-vector back into the link fields, keeping both
// representations in lock-step.
func (d *DoublePendulum) SetState(y dynamo.State) {
	d.A.Theta, d.B.Theta = y[0], y[1]
	d.A.Omega, d.B.Omega = y[2], y[3]
}

// Step advances both links in place by one step of the given integrator.
func (d *DoublePendulum) Step(integ dynamo.Integrator, t, dt dynamo.Real) dynamo.State {
	y := integ.Step(d, d.StateVector(), t, dt)
	d.SetState(y)
	return y
}

// TipPositions returns the Cartesian endpoints of both links chained from
// the pivot at the origin, with "down" negative along y.
func (d *DoublePendulum) TipPositions() (x1, y1, x2, y2 dynamo.Real) {
	x1 = d.A.Length * math.Sin(d.A.Theta)
	y1 = -d.A.Length * math.Cos(d.A.Theta)
	x2 = x1 + d.B.Length*math.Sin(d.B.Theta)
	y2 = y1 - d.B.Length*math.Cos(d.B.Theta)
	return
}

func (d *DoublePendulum) GetParams() map[string]dynamo.Real {
	return map[string]dynamo.Real{
		"length_a": d.A.Length,
		"mass_a":   d.A.Mass,
		"length_b": d.B.Length,
		"mass_b":   d.B.Mass,
		"gravity":  d.G,
	}
}

func (d *DoublePendulum) SetParam(name string, value dynamo.Real) error {
	switch name {
	case "length_a":
		d.A.Length = value
	case "mass_a":
		d.A.Mass = value
	case "length_b":
		d.B.Length = value
	case "mass_b":
		d.B.Mass = value
	case "gravity":
		d.G = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
