package actuator

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/attsim/internal/attitude"
)

// ErrWheelParamMismatch indicates the wheel parameter slices differ in length.
var ErrWheelParamMismatch = errors.New("actuator: wheel parameter lengths differ")

// radPerSecToRPM converts wheel angular acceleration to RPM per second.
const radPerSecToRPM = 60.0 / (2.0 * math.Pi)

type wheel struct {
	axis      attitude.Vec3
	inertia   float64
	maxTorque float64
	maxSpeed  float64
	speed     float64 // RPM
}

// ReactionWheels is an array of independent wheels. Each call integrates
// wheel speeds over the time elapsed since the previous call.
type ReactionWheels struct {
	wheels []wheel
	lastT  float64
	primed bool
}

// NewReactionWheels builds a wheel array. axes, inertias, maxTorques and
// maxSpeeds must have equal length; initialSpeeds may be empty (all at rest)
// or match them. Speeds are in RPM.
func NewReactionWheels(axes []attitude.Vec3, inertias, maxTorques, maxSpeeds, initialSpeeds []float64) (*ReactionWheels, error) {
	n := len(axes)
	if len(inertias) != n || len(maxTorques) != n || len(maxSpeeds) != n {
		return nil, fmt.Errorf("%w: axes=%d inertias=%d max_torques=%d max_speeds=%d",
			ErrWheelParamMismatch, n, len(inertias), len(maxTorques), len(maxSpeeds))
	}
	if len(initialSpeeds) != 0 && len(initialSpeeds) != n {
		return nil, fmt.Errorf("%w: %d wheels, %d initial speeds", ErrWheelParamMismatch, n, len(initialSpeeds))
	}

	rw := &ReactionWheels{wheels: make([]wheel, n)}
	for i := range axes {
		w := wheel{
			axis:      axes[i].Normalize(),
			inertia:   inertias[i],
			maxTorque: maxTorques[i],
			maxSpeed:  maxSpeeds[i],
		}
		if len(initialSpeeds) != 0 {
			w.speed = initialSpeeds[i]
		}
		rw.wheels[i] = w
	}
	return rw, nil
}

func (r *ReactionWheels) Apply(t float64, _ attitude.State, cmd attitude.Vec3) attitude.Vec3 {
	dt := 0.0
	if r.primed {
		dt = t - r.lastT
	}
	r.lastT = t
	r.primed = true

	var body attitude.Vec3
	for i := range r.wheels {
		w := &r.wheels[i]

		tw := clamp(-cmd.Dot(w.axis), w.maxTorque)
		if w.inertia != 0 {
			w.speed = clamp(w.speed+(tw/w.inertia)*radPerSecToRPM*dt, w.maxSpeed)
		}

		// the body receives the reaction to the wheel torque
		body = body.Sub(w.axis.Scale(tw))
	}
	return body
}

// Len returns the number of wheels.
func (r *ReactionWheels) Len() int { return len(r.wheels) }

// Speeds returns a copy of the current wheel speeds in RPM.
func (r *ReactionWheels) Speeds() []float64 {
	out := make([]float64, len(r.wheels))
	for i, w := range r.wheels {
		out[i] = w.speed
	}
	return out
}

// Momentum returns the total wheel angular momentum in the body frame [N·m·s].
func (r *ReactionWheels) Momentum() attitude.Vec3 {
	var h attitude.Vec3
	for _, w := range r.wheels {
		h = h.Add(w.axis.Scale(w.inertia * w.speed / radPerSecToRPM))
	}
	return h
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
