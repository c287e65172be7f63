package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/attsim/internal/attitude"
)

const (
	SymmetryTol = 1e-10
	PosDefTol   = 1e-12
)

var (
	ErrInertiaNotSymmetric        = errors.New("config: inertia matrix is not symmetric")
	ErrInertiaNotPositiveDefinite = errors.New("config: inertia matrix is not positive definite")
	ErrInvalidStep                = errors.New("config: dt must be positive and num_steps non-negative")
	ErrUnknownSelector            = errors.New("config: unknown component selector")
	ErrInvalidShape               = errors.New("config: parameter has wrong shape")
)

// Severity grades a non-fatal configuration check.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityNote
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	default:
		return "ok"
	}
}

var selectors = map[string][]string{
	"dynamics":   {DynamicsRigid, DynamicsKinematic},
	"integrator": {IntegratorEuler, IntegratorRK4},
	"controller": {ControllerZero, ControllerPD, ControllerLQR},
	"sensor":     {SensorIdeal},
	"actuator":   {ActuatorIdeal, ActuatorReactionWheels},
	"reference":  {ReferenceFixed, ReferenceSpin},
}

// ValidateInertia checks symmetry and positive definiteness via the leading
// principal minors.
func ValidateInertia(j attitude.Mat3) error {
	for r := 0; r < 3; r++ {
		for c := r + 1; c < 3; c++ {
			if math.Abs(j[r][c]-j[c][r]) > SymmetryTol {
				return fmt.Errorf("%w: J[%d][%d]=%g, J[%d][%d]=%g", ErrInertiaNotSymmetric, r, c, j[r][c], c, r, j[c][r])
			}
		}
	}

	m1 := j[0][0]
	m2 := j[0][0]*j[1][1] - j[0][1]*j[1][0]
	m3 := j.Det()
	if !(m1 > PosDefTol && m2 > PosDefTol && m3 > PosDefTol) {
		return fmt.Errorf("%w: leading minors %g, %g, %g", ErrInertiaNotPositiveDefinite, m1, m2, m3)
	}
	return nil
}

// CheckTimestep grades the rotation per step h = |w0|·dt. It never fails.
func CheckTimestep(w0 attitude.Vec3, dt float64) Severity {
	h := w0.Norm() * dt
	switch {
	case h > 1.0:
		logrus.Warnf("step too large: |w0|*dt = %.3f rad per step; results may be inaccurate", h)
		return SeverityWarning
	case h > 0.3:
		logrus.Infof("coarse step: |w0|*dt = %.3f rad per step", h)
		return SeverityNote
	}
	return SeverityOK
}

// CheckControlRate warns when the control period is shorter than dt, since
// the controller can update at most once per step.
func CheckControlRate(dt, rateHz float64) Severity {
	if rateHz <= 0 {
		return SeverityOK
	}
	if period := 1.0 / rateHz; period < dt {
		logrus.Warnf("control rate %.1f Hz exceeds step rate %.1f Hz; controller updates once per step", rateHz, 1.0/dt)
		return SeverityWarning
	}
	return SeverityOK
}

// Validate rejects scenarios that cannot be built and logs advisory checks.
func (c *Config) Validate() error {
	if !(c.Dt > 0) || c.NumSteps < 0 {
		return fmt.Errorf("%w: dt=%g num_steps=%d", ErrInvalidStep, c.Dt, c.NumSteps)
	}

	picked := []struct{ kind, name string }{
		{"dynamics", c.Dynamics},
		{"integrator", c.Integrator},
		{"controller", c.Controller},
		{"sensor", c.Sensor},
		{"actuator", c.Actuator},
		{"reference", c.Reference},
	}
	for _, p := range picked {
		if !contains(selectors[p.kind], p.name) {
			return fmt.Errorf("%w: %s %q", ErrUnknownSelector, p.kind, p.name)
		}
	}

	if c.Dynamics == DynamicsRigid || c.Controller == ControllerLQR {
		if err := ValidateInertia(c.Inertia); err != nil {
			return err
		}
	}

	if c.Controller == ControllerLQR {
		if _, _, err := c.Gain(); err != nil {
			return err
		}
	}

	if c.Actuator == ActuatorReactionWheels && len(c.Wheels.Axes) == 0 {
		return fmt.Errorf("%w: reaction_wheels actuator needs at least one wheel", ErrInvalidShape)
	}

	CheckTimestep(c.W0, c.Dt)
	if c.Controller != ControllerZero {
		CheckControlRate(c.Dt, c.ControlRateHz)
	}
	return nil
}

// Selectors lists the accepted names for a component kind.
func Selectors(kind string) []string {
	return append([]string(nil), selectors[kind]...)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
