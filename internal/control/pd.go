package control

import "github.com/san-kum/attsim/internal/attitude"

// PD applies τ_i = -kp_i·eAtt_i - kd_i·eW_i per body axis.
type PD struct {
	Kp   attitude.Vec3
	Kd   attitude.Vec3
	hold sampleHold
}

// NewPD returns a PD controller updating at rateHz. rateHz <= 0 updates on
// every call.
func NewPD(kp, kd attitude.Vec3, rateHz float64) *PD {
	return &PD{
		Kp:   kp,
		Kd:   kd,
		hold: newSampleHold(rateHz),
	}
}

func (p *PD) Command(t float64, est attitude.State, ref attitude.ReferenceState) attitude.Vec3 {
	return p.hold.eval(t, func() attitude.Vec3 {
		eAtt := attitude.AttitudeError(ref.QRef, est.Q)
		eW := attitude.RateError(est.W, ref.WRef)

		var tau attitude.Vec3
		for i := range tau {
			tau[i] = -p.Kp[i]*eAtt[i] - p.Kd[i]*eW[i]
		}
		return tau
	})
}

// Reset clears the held torque and update schedule.
func (p *PD) Reset() {
	p.hold.reset()
}

// GetParams returns the gains for reporting.
func (p *PD) GetParams() map[string]float64 {
	return map[string]float64{
		"kp_x": p.Kp[0], "kp_y": p.Kp[1], "kp_z": p.Kp[2],
		"kd_x": p.Kd[0], "kd_y": p.Kd[1], "kd_z": p.Kd[2],
	}
}
