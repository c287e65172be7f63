package metrics

import (
	"math"

	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/sim"
)

// Energizer is implemented by dynamics that can report rotational kinetic energy.
type Energizer interface {
	Energy(x attitude.State) float64
}

// Energy is the mean rotational kinetic energy over all samples.
type Energy struct {
	name        string
	inertia     attitude.Mat3
	samples     int
	totalEnergy float64
}

func NewEnergy(inertia attitude.Mat3) *Energy {
	return &Energy{
		name:    "kinetic_energy",
		inertia: inertia,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s sim.Sample) {
	e.totalEnergy += attitude.KineticEnergy(e.inertia, s.State.W)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative change in kinetic energy from the
// first sample. It stays zero when the initial energy is zero.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	dyn           Energizer
}

func NewEnergyDrift(dyn Energizer) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s sim.Sample) {
	energy := e.dyn.Energy(s.State)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
