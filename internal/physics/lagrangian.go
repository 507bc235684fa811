package physics

import (
	"math"

	"github.com/san-kum/pendlab/internal/dynamo"
)

// Derive returns dY/dt for the state vector y = (θA, θB, ωA, ωB) using the
// closed-form Lagrangian solution for a two-link hinged pendulum. Every ω
// term is taken from y, never from the links' live fields, so the same
// scheme applies at all four RK4 stage evaluations.
func (d *DoublePendulum) Derive(y dynamo.State, t dynamo.Real) dynamo.State {
	thetaA, thetaB, omegaA, omegaB := y[0], y[1], y[2], y[3]
	lA, lB := d.A.Length, d.B.Length

	rAB := lB / lA
	rBA := lA / lB
	massFrac := d.B.Mass / (d.A.Mass + d.B.Mass)

	delta := thetaA - thetaB
	sinD, cosD := math.Sin(delta), math.Cos(delta)

	coefA := rAB * massFrac * cosD
	coefB := rBA * cosD

	forceA := -rAB*massFrac*omegaB*omegaB*sinD - (d.G/lA)*math.Sin(thetaA)
	forceB := rBA*omegaA*omegaA*sinD - (d.G/lB)*math.Sin(thetaB)

	den := 1 - coefA*coefB
	alphaA := (forceA - coefA*forceB) / den
	alphaB := (forceB - coefB*forceA) / den

	return dynamo.State{omegaA, omegaB, alphaA, alphaB}
}
