package sim

import (
	"fmt"

	"github.com/san-kum/attsim/internal/attitude"
)

// Simulation owns one instance of each component for its lifetime.
type Simulation struct {
	dyn        Dynamics
	integrator Integrator
	controller Controller
	sensor     Sensor
	actuator   Actuator
	reference  Reference
	metrics    []Metric
	observers  []Observer
}

func New(dyn Dynamics, integrator Integrator, controller Controller, sensor Sensor, actuator Actuator, reference Reference) (*Simulation, error) {
	switch {
	case dyn == nil:
		return nil, fmt.Errorf("%w: dynamics", ErrMissingComponent)
	case integrator == nil:
		return nil, fmt.Errorf("%w: integrator", ErrMissingComponent)
	case controller == nil:
		return nil, fmt.Errorf("%w: controller", ErrMissingComponent)
	case sensor == nil:
		return nil, fmt.Errorf("%w: sensor", ErrMissingComponent)
	case actuator == nil:
		return nil, fmt.Errorf("%w: actuator", ErrMissingComponent)
	case reference == nil:
		return nil, fmt.Errorf("%w: reference", ErrMissingComponent)
	}

	return &Simulation{
		dyn:        dyn,
		integrator: integrator,
		controller: controller,
		sensor:     sensor,
		actuator:   actuator,
		reference:  reference,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}, nil
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Actuator returns the owned actuator so callers can inspect its state
// (wheel speeds) after a run.
func (s *Simulation) Actuator() Actuator { return s.actuator }

func (s *Simulation) Controller() Controller { return s.controller }

// Run propagates x0 for cfg.NumSteps steps. Component state is not reset, so
// a second call continues from whatever the controller and actuator hold.
//
// If a propagated state is not finite the result is truncated before it and
// a *RunError is returned together with the partial result.
func (s *Simulation) Run(cfg Config, x0 attitude.State) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	traj := s.integrator.Integrate(s.dyn, cfg.T0, x0, cfg.Dt, cfg.NumSteps, s.resolveTorque)

	var runErr error
	states, acts := traj.States, traj.Actuations
	for k, x := range states {
		if !x.IsValid() {
			runErr = &RunError{Step: k, Time: cfg.T0 + float64(k)*cfg.Dt, Wrapped: ErrInvalidState}
			states = states[:k]
			acts = acts[:max(k-1, 0)]
			break
		}
	}

	result := s.collect(cfg, states, acts)
	return result, runErr
}

// resolveTorque is the per-step control loop handed to the integrator.
func (s *Simulation) resolveTorque(t float64, x attitude.State) Actuation {
	est := x
	est.Q = s.sensor.MeasureAttitude(t, x)

	ref := s.reference.Reference(t, est)
	cmd := s.controller.Command(t, est, ref)
	applied := s.actuator.Apply(t, x, cmd)

	return Actuation{Commanded: cmd, Applied: applied}
}

func (s *Simulation) collect(cfg Config, states []attitude.State, acts []Actuation) *Result {
	n := len(states)
	result := &Result{
		Times:          make([]float64, 0, n),
		States:         make([]attitude.State, 0, n),
		Commanded:      make([]attitude.Vec3, 0, len(acts)),
		Applied:        make([]attitude.Vec3, 0, len(acts)),
		References:     make([]attitude.ReferenceState, 0, n),
		AttitudeErrors: make([]attitude.Vec3, 0, n),
		RateErrors:     make([]attitude.Vec3, 0, n),
		Metrics:        make(map[string]float64),
	}

	for _, a := range acts {
		result.Commanded = append(result.Commanded, a.Commanded)
		result.Applied = append(result.Applied, a.Applied)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for k, x := range states {
		tk := cfg.T0 + float64(k)*cfg.Dt
		ref := s.reference.Reference(tk, x)
		sample := Sample{
			Step:          k,
			Time:          tk,
			State:         x,
			Reference:     ref,
			AttitudeError: attitude.AttitudeError(ref.QRef, x.Q),
			RateError:     attitude.RateError(x.W, ref.WRef),
		}
		if k < len(acts) {
			sample.Actuation = acts[k]
			sample.HasTorque = true
		}

		result.Times = append(result.Times, tk)
		result.States = append(result.States, x)
		result.References = append(result.References, ref)
		result.AttitudeErrors = append(result.AttitudeErrors, sample.AttitudeError)
		result.RateErrors = append(result.RateErrors, sample.RateError)

		for _, m := range s.metrics {
			m.Observe(sample)
		}
		for _, o := range s.observers {
			o.OnSample(sample)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.NumSteps < 0 {
		return fmt.Errorf("%w: num steps must be non-negative, got %d", ErrInvalidConfig, cfg.NumSteps)
	}
	return nil
}
