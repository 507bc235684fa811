package metrics

import (
	"math"

	"github.com/san-kum/pendlab/internal/dynamo"
)

// TotalEnergy averages the system's mechanical energy over a run.
type TotalEnergy struct {
	name    string
	dyn     dynamo.Hamiltonian
	sum     dynamo.Real
	samples int
}

func NewTotalEnergy(dyn dynamo.Hamiltonian) *TotalEnergy {
	return &TotalEnergy{name: "energy", dyn: dyn}
}

func (e *TotalEnergy) Name() string { return e.name }

func (e *TotalEnergy) Observe(x dynamo.State, t dynamo.Real) {
	e.sum += e.dyn.Energy(x)
	e.samples++
}

func (e *TotalEnergy) Value() dynamo.Real {
	if e.samples == 0 {
		return 0
	}
	return e.sum / dynamo.Real(e.samples)
}

func (e *TotalEnergy) Reset() {
	e.sum = 0
	e.samples = 0
}

// EnergyDrift tracks the maximum relative deviation from the initial
// energy, the primary integration-fidelity check for a Hamiltonian system.
type EnergyDrift struct {
	name          string
	dyn           dynamo.Hamiltonian
	initialEnergy dynamo.Real
	maxDrift      dynamo.Real
	samples       int
}

func NewEnergyDrift(dyn dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", dyn: dyn}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t dynamo.Real) {
	energy := e.dyn.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() dynamo.Real {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
