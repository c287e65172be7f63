package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/config"
	"github.com/san-kum/attsim/internal/sim"
)

var ErrUnknownParam = errors.New("experiment: unknown sweep parameter")

var sweepParams = map[string]func(c *config.Config, v float64){
	"kp":              func(c *config.Config, v float64) { c.KpAtt = attitude.Vec3{v, v, v} },
	"kd":              func(c *config.Config, v float64) { c.KdRate = attitude.Vec3{v, v, v} },
	"dt":              func(c *config.Config, v float64) { c.Dt = v },
	"control_rate_hz": func(c *config.Config, v float64) { c.ControlRateHz = v },
	"lqr_q":           func(c *config.Config, v float64) { c.LQRWeights.Q = attitude.Vec3{v, v, v} },
	"lqr_w":           func(c *config.Config, v float64) { c.LQRWeights.W = attitude.Vec3{v, v, v} },
	"lqr_r":           func(c *config.Config, v float64) { c.LQRWeights.R = attitude.Vec3{v, v, v} },
	"wheel_max_torque": func(c *config.Config, v float64) {
		for i := range c.Wheels.MaxTorques {
			c.Wheels.MaxTorques[i] = v
		}
	},
}

// ApplyParam sets a named scalar parameter on c. Vector parameters are set
// on all three axes.
func ApplyParam(c *config.Config, name string, value float64) error {
	fn, ok := sweepParams[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	fn(c, value)
	return nil
}

// Variant is a labelled scenario for a parallel batch.
type Variant struct {
	Label  string
	Config *config.Config
}

// RunBatch runs every variant concurrently, building fresh components per run.
func RunBatch(ctx context.Context, registry *Registry, variants []Variant, workers int) ([]*sim.Result, error) {
	if registry == nil {
		registry = NewRegistry()
	}

	logrus.Infof("running %d variants with %d workers", len(variants), workers)

	return sim.Sweep(ctx, len(variants), workers, func(i int) (sim.Job, error) {
		v := variants[i]
		s, err := registry.Build(v.Config)
		if err != nil {
			return sim.Job{}, fmt.Errorf("%s: %w", v.Label, err)
		}
		logrus.Debugf("built variant %s", v.Label)
		return sim.Job{Sim: s, X0: v.Config.InitialState(), Config: SimConfig(v.Config)}, nil
	})
}

// ParamSweep returns one variant of base per value of the named parameter.
func ParamSweep(base *config.Config, param string, values []float64) ([]Variant, error) {
	variants := make([]Variant, 0, len(values))
	for _, v := range values {
		c := base.Clone()
		if err := ApplyParam(c, param, v); err != nil {
			return nil, err
		}
		variants = append(variants, Variant{Label: fmt.Sprintf("%s=%g", param, v), Config: c})
	}
	return variants, nil
}

// IntegratorVariants returns one variant of base per integrator name.
func IntegratorVariants(base *config.Config, names []string) []Variant {
	variants := make([]Variant, 0, len(names))
	for _, n := range names {
		c := base.Clone()
		c.Integrator = n
		variants = append(variants, Variant{Label: n, Config: c})
	}
	return variants
}
