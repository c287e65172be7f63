package control

import "github.com/san-kum/attsim/internal/attitude"

// Gain maps the error state [eAtt; eW] to torque.
type Gain [3][6]float64

// LQR applies τ = -K·[eAtt; eW].
type LQR struct {
	K    Gain
	hold sampleHold
}

func NewLQR(k Gain, rateHz float64) *LQR {
	return &LQR{K: k, hold: newSampleHold(rateHz)}
}

func (l *LQR) Command(t float64, est attitude.State, ref attitude.ReferenceState) attitude.Vec3 {
	return l.hold.eval(t, func() attitude.Vec3 {
		eAtt := attitude.AttitudeError(ref.QRef, est.Q)
		eW := attitude.RateError(est.W, ref.WRef)
		x := [6]float64{eAtt[0], eAtt[1], eAtt[2], eW[0], eW[1], eW[2]}

		var tau attitude.Vec3
		for i := range tau {
			for j := range x {
				tau[i] -= l.K[i][j] * x[j]
			}
		}
		return tau
	})
}

func (l *LQR) Reset() {
	l.hold.reset()
}
