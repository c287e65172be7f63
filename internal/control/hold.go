package control

import "github.com/san-kum/attsim/internal/attitude"

// holdTol absorbs rounding in t = t0 + k·dt when comparing against the
// accumulated update schedule.
const holdTol = 1e-12

// sampleHold schedules controller updates at a fixed rate. A non-positive
// rate disables holding and every call recomputes.
type sampleHold struct {
	period float64
	next   float64
	last   attitude.Vec3
	primed bool
}

func newSampleHold(rateHz float64) sampleHold {
	h := sampleHold{}
	if rateHz > 0 {
		h.period = 1.0 / rateHz
	}
	return h
}

// eval returns the held torque, calling compute only when an update is due.
func (h *sampleHold) eval(t float64, compute func() attitude.Vec3) attitude.Vec3 {
	if h.period <= 0 {
		h.last = compute()
		return h.last
	}
	if !h.primed {
		h.next = t
		h.primed = true
	}
	if t+holdTol >= h.next {
		h.last = compute()
		h.next += h.period
	}
	return h.last
}

func (h *sampleHold) reset() {
	h.next = 0
	h.last = attitude.Vec3{}
	h.primed = false
}
