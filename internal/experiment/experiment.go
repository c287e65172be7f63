package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/attsim/internal/actuator"
	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/config"
	"github.com/san-kum/attsim/internal/sim"
	"github.com/san-kum/attsim/internal/storage"
)

// Experiment is one scenario run built from a config.
type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	simulator *sim.Simulation
}

func New(cfg *config.Config, registry *Registry) *Experiment {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Experiment{
		cfg:      cfg,
		registry: registry,
	}
}

// Setup builds the simulation. It may be called again to start from fresh
// component state.
func (e *Experiment) Setup() error {
	s, err := e.registry.Build(e.cfg)
	if err != nil {
		return fmt.Errorf("experiment %q: %w", e.cfg.Name, err)
	}
	e.simulator = s
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logrus.Infof("running %q: %s/%s/%s, dt=%g, steps=%d",
		e.cfg.Name, e.cfg.Dynamics, e.cfg.Integrator, e.cfg.Controller, e.cfg.Dt, e.cfg.NumSteps)

	start := time.Now()
	res, err := e.simulator.Run(SimConfig(e.cfg), e.cfg.InitialState())
	if err != nil {
		return res, err
	}

	logrus.Debugf("run %q finished in %v", e.cfg.Name, time.Since(start))
	for name, v := range res.Metrics {
		logrus.Debugf("  %s = %g", name, v)
	}
	return res, nil
}

// GetSimulator returns the underlying simulation for adding observers.
func (e *Experiment) GetSimulator() *sim.Simulation {
	return e.simulator
}

// WheelSpeeds returns the reaction wheel speeds [RPM] after a run, or nil
// when the scenario uses another actuator.
func (e *Experiment) WheelSpeeds() []float64 {
	if e.simulator == nil {
		return nil
	}
	if rw, ok := e.simulator.Actuator().(*actuator.ReactionWheels); ok {
		return rw.Speeds()
	}
	return nil
}

// WheelMomentum returns the total reaction wheel momentum after a run. ok is
// false when the scenario uses another actuator.
func (e *Experiment) WheelMomentum() (h attitude.Vec3, ok bool) {
	if e.simulator == nil {
		return h, false
	}
	if rw, isRW := e.simulator.Actuator().(*actuator.ReactionWheels); isRW {
		return rw.Momentum(), true
	}
	return h, false
}

type paramReporter interface {
	GetParams() map[string]float64
}

// ControllerParams returns the controller gains when the controller reports
// them, or nil.
func (e *Experiment) ControllerParams() map[string]float64 {
	if e.simulator == nil {
		return nil
	}
	if p, ok := e.simulator.Controller().(paramReporter); ok {
		return p.GetParams()
	}
	return nil
}

// Metadata describes the scenario for storage. ID, Timestamp and Metrics are
// filled in by the store.
func (e *Experiment) Metadata() storage.RunMetadata {
	c := e.cfg
	meta := storage.RunMetadata{
		Scenario:    c.Name,
		T0:          c.T0,
		Dt:          c.Dt,
		NumSteps:    c.NumSteps,
		Dynamics:    c.Dynamics,
		Integrator:  c.Integrator,
		Controller:  c.Controller,
		Actuator:    c.Actuator,
		Reference:   c.Reference,
		WheelSpeeds: e.WheelSpeeds(),

		ControllerParams: e.ControllerParams(),
	}
	if h, ok := e.WheelMomentum(); ok {
		meta.WheelMomentum = h[:]
	}
	return meta
}

// SimConfig extracts the run configuration from a scenario.
func SimConfig(c *config.Config) sim.Config {
	return sim.Config{T0: c.T0, Dt: c.Dt, NumSteps: c.NumSteps}
}
