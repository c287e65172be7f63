package metrics

import (
	"math"

	"github.com/san-kum/attsim/internal/sim"
)

// AttitudeErrorRMS is the root mean square of the attitude error norm [rad].
type AttitudeErrorRMS struct {
	name    string
	sumSq   float64
	samples int
}

func NewAttitudeErrorRMS() *AttitudeErrorRMS {
	return &AttitudeErrorRMS{name: "attitude_error_rms"}
}

func (a *AttitudeErrorRMS) Name() string { return a.name }

func (a *AttitudeErrorRMS) Observe(s sim.Sample) {
	n := s.AttitudeError.Norm()
	a.sumSq += n * n
	a.samples++
}

func (a *AttitudeErrorRMS) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return math.Sqrt(a.sumSq / float64(a.samples))
}

func (a *AttitudeErrorRMS) Reset() {
	a.sumSq = 0
	a.samples = 0
}

// FinalAttitudeError is the attitude error norm at the last sample.
type FinalAttitudeError struct {
	name string
	last float64
}

func NewFinalAttitudeError() *FinalAttitudeError {
	return &FinalAttitudeError{name: "final_attitude_error"}
}

func (f *FinalAttitudeError) Name() string { return f.name }

func (f *FinalAttitudeError) Observe(s sim.Sample) {
	f.last = s.AttitudeError.Norm()
}

func (f *FinalAttitudeError) Value() float64 { return f.last }

func (f *FinalAttitudeError) Reset() { f.last = 0 }
