package experiment

import (
	"github.com/sirupsen/logrus"

	"github.com/san-kum/attsim/internal/sim"
)

// TraceObserver logs every Nth sample of a finished run, plus the last one.
type TraceObserver struct {
	every    int
	numSteps int
	logger   logrus.FieldLogger
}

// NewTraceObserver traces a run of numSteps steps. every <= 0 traces only the
// final sample.
func NewTraceObserver(logger logrus.FieldLogger, every, numSteps int) *TraceObserver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &TraceObserver{every: every, numSteps: numSteps, logger: logger}
}

func (o *TraceObserver) OnSample(s sim.Sample) {
	last := s.Step == o.numSteps
	if !last && (o.every <= 0 || s.Step%o.every != 0) {
		return
	}

	fields := logrus.Fields{
		"step":     s.Step,
		"t":        s.Time,
		"att_err":  s.AttitudeError.Norm(),
		"rate_err": s.RateError.Norm(),
		"rate":     s.State.W.Norm(),
	}
	if s.HasTorque {
		fields["torque"] = s.Actuation.Applied.Norm()
	}
	o.logger.WithFields(fields).Info("sample")
}
