package physics

import (
	"math"

	"github.com/san-kum/pendlab/internal/dynamo"
)

// Potential returns gravitational potential energy with heights measured
// relative to the fixed pivot (down is negative).
func (d *DoublePendulum) Potential(y dynamo.State) dynamo.Real {
	h1 := -d.A.Length * math.Cos(y[0])
	h2 := h1 - d.B.Length*math.Cos(y[1])
	return d.A.Mass*d.G*h1 + d.B.Mass*d.G*h2
}

// Kinetic returns the kinetic energy of both links including the coupling
// term between the two angular velocities.
func (d *DoublePendulum) Kinetic(y dynamo.State) dynamo.Real {
	thetaA, thetaB, omegaA, omegaB := y[0], y[1], y[2], y[3]
	lA, lB := d.A.Length, d.B.Length

	vA2 := lA * lA * omegaA * omegaA
	vB2 := lB * lB * omegaB * omegaB

	kA := 0.5 * d.A.Mass * vA2
	kB := 0.5 * d.B.Mass * (vA2 + vB2 + 2*lA*lB*omegaA*omegaB*math.Cos(thetaA-thetaB))
	return kA + kB
}

// Energy returns total mechanical energy. Not called by the integration
// loop; used for drift diagnostics and tests.
func (d *DoublePendulum) Energy(y dynamo.State) dynamo.Real {
	return d.Kinetic(y) + d.Potential(y)
}
