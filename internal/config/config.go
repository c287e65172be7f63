package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/attsim/internal/attitude"
)

const (
	DefaultDt       = 0.01
	DefaultNumSteps = 2000
	DefaultKp       = 2.0
	DefaultKd       = 8.0
)

// Component selectors.
const (
	DynamicsRigid     = "rigid"
	DynamicsKinematic = "kinematic"

	IntegratorEuler = "euler"
	IntegratorRK4   = "rk4"

	ControllerZero = "zero"
	ControllerPD   = "pd"
	ControllerLQR  = "lqr"

	SensorIdeal = "ideal"

	ActuatorIdeal          = "ideal"
	ActuatorReactionWheels = "reaction_wheels"

	ReferenceFixed = "fixed"
	ReferenceSpin  = "spin"
)

// Config is a complete simulation scenario.
type Config struct {
	Name       string `yaml:"name"`
	Dynamics   string `yaml:"dynamics"`
	Integrator string `yaml:"integrator"`
	Controller string `yaml:"controller"`
	Sensor     string `yaml:"sensor"`
	Actuator   string `yaml:"actuator"`
	Reference  string `yaml:"reference"`

	T0       float64 `yaml:"t0"`
	Dt       float64 `yaml:"dt"`
	NumSteps int     `yaml:"num_steps"`

	Q0      attitude.Quat `yaml:"q0"`
	W0      attitude.Vec3 `yaml:"w0"`
	Inertia attitude.Mat3 `yaml:"inertia"`

	QRef attitude.Quat `yaml:"q_ref"`
	WRef attitude.Vec3 `yaml:"w_ref"`

	KpAtt         attitude.Vec3 `yaml:"kp_att"`
	KdRate        attitude.Vec3 `yaml:"kd_rate"`
	KLQR          [][]float64   `yaml:"k_lqr,omitempty"`
	LQRWeights    LQRWeights    `yaml:"lqr_weights"`
	ControlRateHz float64       `yaml:"control_rate_hz"`

	Wheels WheelConfig `yaml:"wheels,omitempty"`
}

// LQRWeights are the diagonal weights used to synthesize a gain when k_lqr
// is not given.
type LQRWeights struct {
	Q attitude.Vec3 `yaml:"q"`
	W attitude.Vec3 `yaml:"w"`
	R attitude.Vec3 `yaml:"r"`
}

type WheelConfig struct {
	Axes          []attitude.Vec3 `yaml:"axes"`
	Inertias      []float64       `yaml:"inertias"`
	MaxTorques    []float64       `yaml:"max_torques"`
	MaxSpeeds     []float64       `yaml:"max_speeds"`
	InitialSpeeds []float64       `yaml:"initial_speeds,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "default",
		Dynamics:   DynamicsRigid,
		Integrator: IntegratorRK4,
		Controller: ControllerPD,
		Sensor:     SensorIdeal,
		Actuator:   ActuatorIdeal,
		Reference:  ReferenceFixed,
		Dt:         DefaultDt,
		NumSteps:   DefaultNumSteps,
		Q0:         attitude.Identity,
		Inertia:    attitude.Diag(attitude.Vec3{10, 12, 8}),
		QRef:       attitude.Identity,
		KpAtt:      attitude.Vec3{DefaultKp, DefaultKp, DefaultKp},
		KdRate:     attitude.Vec3{DefaultKd, DefaultKd, DefaultKd},
		LQRWeights: LQRWeights{
			Q: attitude.Vec3{1, 1, 1},
			W: attitude.Vec3{10, 10, 10},
			R: attitude.Vec3{1, 1, 1},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Duration is the simulated time span in seconds.
func (c *Config) Duration() float64 {
	return float64(c.NumSteps) * c.Dt
}

// InitialState returns the starting state with q0 as configured; the
// integrator keeps element 0 unmodified, so q0 is expected to be unit norm.
func (c *Config) InitialState() attitude.State {
	return attitude.State{Q: c.Q0, W: c.W0}
}

// Gain returns k_lqr as a fixed-size array. ok is false when k_lqr is unset.
func (c *Config) Gain() (k [3][6]float64, ok bool, err error) {
	if len(c.KLQR) == 0 {
		return k, false, nil
	}
	if len(c.KLQR) != 3 {
		return k, false, fmt.Errorf("%w: k_lqr has %d rows, want 3", ErrInvalidShape, len(c.KLQR))
	}
	for i, row := range c.KLQR {
		if len(row) != 6 {
			return k, false, fmt.Errorf("%w: k_lqr row %d has %d columns, want 6", ErrInvalidShape, i, len(row))
		}
		copy(k[i][:], row)
	}
	return k, true, nil
}

// Clone returns a deep copy so presets can be modified safely.
func (c *Config) Clone() *Config {
	out := *c
	if c.KLQR != nil {
		out.KLQR = make([][]float64, len(c.KLQR))
		for i, row := range c.KLQR {
			out.KLQR[i] = append([]float64(nil), row...)
		}
	}
	out.Wheels = WheelConfig{
		Axes:          append([]attitude.Vec3(nil), c.Wheels.Axes...),
		Inertias:      append([]float64(nil), c.Wheels.Inertias...),
		MaxTorques:    append([]float64(nil), c.Wheels.MaxTorques...),
		MaxSpeeds:     append([]float64(nil), c.Wheels.MaxSpeeds...),
		InitialSpeeds: append([]float64(nil), c.Wheels.InitialSpeeds...),
	}
	return &out
}
