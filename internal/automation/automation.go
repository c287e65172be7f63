// Package automation runs scripted campaigns of scenarios and Monte Carlo
// dispersions of initial conditions.
package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/config"
	"github.com/san-kum/attsim/internal/experiment"
	"github.com/san-kum/attsim/internal/sim"
	"github.com/san-kum/attsim/internal/storage"
)

var ErrInvalidStep = errors.New("automation: step needs exactly one of preset or scenario")

// Campaign is a scripted sequence of scenario runs.
type Campaign struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []CampaignStep `yaml:"steps"`

	dir string
}

// CampaignStep selects a preset or a scenario file and overrides parameters
// by experiment.ApplyParam name.
type CampaignStep struct {
	Preset     string             `yaml:"preset"`
	Scenario   string             `yaml:"scenario"`
	Integrator string             `yaml:"integrator"`
	Controller string             `yaml:"controller"`
	NumSteps   int                `yaml:"num_steps"`
	Params     map[string]float64 `yaml:"params"`
	SaveAs     string             `yaml:"save_as"`
}

// StepResult is the outcome of one campaign step. RunID is empty when no
// store was given.
type StepResult struct {
	Name   string
	RunID  string
	Result *sim.Result
}

// LoadCampaign reads a campaign file. Scenario paths in steps are resolved
// relative to the campaign file.
func LoadCampaign(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Campaign
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	c.dir = filepath.Dir(path)
	return &c, nil
}

// Config resolves the scenario of one step.
func (c *Campaign) Config(step CampaignStep) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case step.Preset != "" && step.Scenario == "":
		cfg = config.GetPreset(step.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", step.Preset)
		}
	case step.Scenario != "" && step.Preset == "":
		path := step.Scenario
		if !filepath.IsAbs(path) && c.dir != "" {
			path = filepath.Join(c.dir, path)
		}
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		return nil, ErrInvalidStep
	}

	if step.Integrator != "" {
		cfg.Integrator = step.Integrator
	}
	if step.Controller != "" {
		cfg.Controller = step.Controller
	}
	if step.NumSteps > 0 {
		cfg.NumSteps = step.NumSteps
	}
	for k, v := range step.Params {
		if err := experiment.ApplyParam(cfg, k, v); err != nil {
			return nil, err
		}
	}
	if step.SaveAs != "" {
		cfg.Name = step.SaveAs
	}
	return cfg, nil
}

// RunCampaign executes the steps in order and stores each result when st is
// not nil. It stops at the first failing step and returns the results so far.
func RunCampaign(ctx context.Context, c *Campaign, registry *experiment.Registry, st *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(c.Steps))

	for i, step := range c.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg, err := c.Config(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logrus.Infof("campaign %s: step %d/%d: %s", c.Name, i+1, len(c.Steps), cfg.Name)

		exp := experiment.New(cfg, registry)
		if err := exp.Setup(); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: cfg.Name, Result: result}
		if st != nil {
			id, err := st.Save(exp.Metadata(), result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = id
		}
		results = append(results, sr)
	}

	return results, nil
}

// MonteCarloConfig disperses the initial state of a scenario. Each trial
// rotates q0 by a uniformly random angle in [0, AngleSpread] about a random
// axis and adds a uniform perturbation in [-RateSpread, RateSpread] to each
// component of w0.
type MonteCarloConfig struct {
	NumTrials   int
	AngleSpread float64
	RateSpread  float64
	Seed        int64
	// Threshold on the final attitude error norm [rad] for a trial to count
	// as converged.
	Threshold float64
	Workers   int
}

type MonteCarloResult struct {
	TrialID    int
	InitState  attitude.State
	FinalState attitude.State
	FinalError float64
	Converged  bool
}

// Trials returns the dispersed scenarios. The same seed always yields the
// same trials; a zero seed draws one from the clock.
func Trials(base *config.Config, mc MonteCarloConfig) []experiment.Variant {
	seed := mc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	variants := make([]experiment.Variant, 0, mc.NumTrials)
	for trial := 0; trial < mc.NumTrials; trial++ {
		c := base.Clone()

		axis := attitude.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		dq := attitude.FromAxisAngle(axis, rng.Float64()*mc.AngleSpread)
		c.Q0 = dq.Mul(c.Q0).Normalize()
		for i := range c.W0 {
			c.W0[i] += (rng.Float64() - 0.5) * 2 * mc.RateSpread
		}

		variants = append(variants, experiment.Variant{
			Label:  fmt.Sprintf("trial_%d", trial),
			Config: c,
		})
	}
	return variants
}

// RunMonteCarlo runs the dispersed trials of base in parallel.
func RunMonteCarlo(ctx context.Context, base *config.Config, mc MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	variants := Trials(base, mc)

	runs, err := experiment.RunBatch(ctx, registry, variants, mc.Workers)
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(runs))
	for i, r := range runs {
		finalErr := math.NaN()
		if n := len(r.AttitudeErrors); n > 0 {
			finalErr = r.AttitudeErrors[n-1].Norm()
		}
		final, _ := r.Final()
		results[i] = MonteCarloResult{
			TrialID:    i,
			InitState:  variants[i].Config.InitialState(),
			FinalState: final,
			FinalError: finalErr,
			Converged:  finalErr <= mc.Threshold,
		}
	}

	convergedCount, _ := MonteCarloStats(results)
	logrus.Infof("monte carlo: %d/%d trials converged", convergedCount, len(results))
	return results, nil
}

// MonteCarloStats counts converged and diverged trials.
func MonteCarloStats(results []MonteCarloResult) (converged int, diverged int) {
	for _, r := range results {
		if r.Converged {
			converged++
		} else {
			diverged++
		}
	}
	return
}
