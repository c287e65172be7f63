package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/attsim/internal/actuator"
	"github.com/san-kum/attsim/internal/config"
	"github.com/san-kum/attsim/internal/control"
	"github.com/san-kum/attsim/internal/dynamics"
	"github.com/san-kum/attsim/internal/integrators"
	"github.com/san-kum/attsim/internal/metrics"
	"github.com/san-kum/attsim/internal/reference"
	"github.com/san-kum/attsim/internal/sensor"
	"github.com/san-kum/attsim/internal/sim"
)

var ErrUnknownComponent = errors.New("experiment: unknown component")

// Component kinds accepted by Names.
const (
	KindDynamics   = "dynamics"
	KindIntegrator = "integrator"
	KindController = "controller"
	KindSensor     = "sensor"
	KindActuator   = "actuator"
	KindReference  = "reference"
)

// Registry maps selector strings to component constructors. Every lookup
// constructs a new instance, so built simulations never share state.
type Registry struct {
	dynamics    map[string]func(*config.Config) (sim.Dynamics, error)
	integrators map[string]func() sim.Integrator
	controllers map[string]func(*config.Config) (sim.Controller, error)
	sensors     map[string]func(*config.Config) sim.Sensor
	actuators   map[string]func(*config.Config) (sim.Actuator, error)
	references  map[string]func(*config.Config) sim.Reference
}

func NewRegistry() *Registry {
	r := &Registry{
		dynamics:    make(map[string]func(*config.Config) (sim.Dynamics, error)),
		integrators: make(map[string]func() sim.Integrator),
		controllers: make(map[string]func(*config.Config) (sim.Controller, error)),
		sensors:     make(map[string]func(*config.Config) sim.Sensor),
		actuators:   make(map[string]func(*config.Config) (sim.Actuator, error)),
		references:  make(map[string]func(*config.Config) sim.Reference),
	}

	r.dynamics[config.DynamicsKinematic] = func(*config.Config) (sim.Dynamics, error) {
		return dynamics.NewKinematic(), nil
	}
	r.dynamics[config.DynamicsRigid] = func(c *config.Config) (sim.Dynamics, error) {
		return dynamics.NewRigidBody(c.Inertia)
	}

	r.integrators[config.IntegratorEuler] = func() sim.Integrator { return integrators.NewEuler() }
	r.integrators[config.IntegratorRK4] = func() sim.Integrator { return integrators.NewRK4() }

	r.controllers[config.ControllerZero] = func(*config.Config) (sim.Controller, error) {
		return control.NewZero(), nil
	}
	r.controllers[config.ControllerPD] = func(c *config.Config) (sim.Controller, error) {
		return control.NewPD(c.KpAtt, c.KdRate, c.ControlRateHz), nil
	}
	r.controllers[config.ControllerLQR] = func(c *config.Config) (sim.Controller, error) {
		k, err := Gain(c)
		if err != nil {
			return nil, err
		}
		return control.NewLQR(k, c.ControlRateHz), nil
	}

	r.sensors[config.SensorIdeal] = func(*config.Config) sim.Sensor { return sensor.NewIdeal() }

	r.actuators[config.ActuatorIdeal] = func(*config.Config) (sim.Actuator, error) {
		return actuator.NewIdeal(), nil
	}
	r.actuators[config.ActuatorReactionWheels] = func(c *config.Config) (sim.Actuator, error) {
		w := c.Wheels
		return actuator.NewReactionWheels(w.Axes, w.Inertias, w.MaxTorques, w.MaxSpeeds, w.InitialSpeeds)
	}

	r.references[config.ReferenceFixed] = func(c *config.Config) sim.Reference {
		return reference.NewConstant(c.QRef, c.WRef)
	}
	r.references[config.ReferenceSpin] = func(c *config.Config) sim.Reference {
		return reference.NewSpin(c.WRef)
	}

	return r
}

// Gain returns k_lqr when the scenario sets it and otherwise synthesizes
// one from the inertia and LQR weights.
func Gain(c *config.Config) (control.Gain, error) {
	k, ok, err := c.Gain()
	if err != nil {
		return control.Gain{}, err
	}
	if ok {
		return control.Gain(k), nil
	}
	w := c.LQRWeights
	return control.SynthesizeLQR(c.Inertia, w.Q, w.W, w.R)
}

func (r *Registry) GetDynamics(c *config.Config) (sim.Dynamics, error) {
	fn, ok := r.dynamics[c.Dynamics]
	if !ok {
		return nil, unknown(KindDynamics, c.Dynamics)
	}
	return fn(c)
}

func (r *Registry) GetIntegrator(name string) (sim.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, unknown(KindIntegrator, name)
	}
	return fn(), nil
}

func (r *Registry) GetController(c *config.Config) (sim.Controller, error) {
	fn, ok := r.controllers[c.Controller]
	if !ok {
		return nil, unknown(KindController, c.Controller)
	}
	return fn(c)
}

func (r *Registry) GetSensor(c *config.Config) (sim.Sensor, error) {
	fn, ok := r.sensors[c.Sensor]
	if !ok {
		return nil, unknown(KindSensor, c.Sensor)
	}
	return fn(c), nil
}

func (r *Registry) GetActuator(c *config.Config) (sim.Actuator, error) {
	fn, ok := r.actuators[c.Actuator]
	if !ok {
		return nil, unknown(KindActuator, c.Actuator)
	}
	return fn(c)
}

func (r *Registry) GetReference(c *config.Config) (sim.Reference, error) {
	fn, ok := r.references[c.Reference]
	if !ok {
		return nil, unknown(KindReference, c.Reference)
	}
	return fn(c), nil
}

// Build validates c and returns a simulation wired with fresh components
// and the default metrics.
func (r *Registry) Build(c *config.Config) (*sim.Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	dyn, err := r.GetDynamics(c)
	if err != nil {
		return nil, err
	}
	integ, err := r.GetIntegrator(c.Integrator)
	if err != nil {
		return nil, err
	}
	ctrl, err := r.GetController(c)
	if err != nil {
		return nil, err
	}
	sens, err := r.GetSensor(c)
	if err != nil {
		return nil, err
	}
	act, err := r.GetActuator(c)
	if err != nil {
		return nil, err
	}
	ref, err := r.GetReference(c)
	if err != nil {
		return nil, err
	}

	s, err := sim.New(dyn, integ, ctrl, sens, act, ref)
	if err != nil {
		return nil, err
	}
	for _, m := range r.DefaultMetrics(dyn) {
		s.AddMetric(m)
	}
	return s, nil
}

// Names lists the registered selectors for kind in sorted order.
func (r *Registry) Names(kind string) []string {
	var names []string
	switch kind {
	case KindDynamics:
		names = keys(r.dynamics)
	case KindIntegrator:
		names = keys(r.integrators)
	case KindController:
		names = keys(r.controllers)
	case KindSensor:
		names = keys(r.sensors)
	case KindActuator:
		names = keys(r.actuators)
	case KindReference:
		names = keys(r.references)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(dyn sim.Dynamics) []sim.Metric {
	return append(metrics.Default(dyn), metrics.NewStability(1.0))
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func unknown(kind, name string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownComponent, kind, name)
}
