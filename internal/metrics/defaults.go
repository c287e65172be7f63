package metrics

import (
	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/sim"
)

type inertial interface {
	Inertia() attitude.Mat3
}

// Default returns the metrics reported for every run. Energy metrics are only
// included when dyn has an inertia.
func Default(dyn sim.Dynamics) []sim.Metric {
	ms := []sim.Metric{
		NewControlEffort(),
		NewAttitudeErrorRMS(),
		NewFinalAttitudeError(),
	}
	if j, ok := dyn.(inertial); ok {
		ms = append(ms, NewEnergy(j.Inertia()))
	}
	if e, ok := dyn.(Energizer); ok {
		ms = append(ms, NewEnergyDrift(e))
	}
	return ms
}
