package attitude

// State is the attitude state propagated by the simulation.
type State struct {
	Q Quat // body wrt inertial, unit norm
	W Vec3 // body rate [rad/s]
}

func (s State) IsValid() bool { return s.Q.IsFinite() && s.W.IsFinite() }

// ReferenceState is the desired attitude and body rate at some time.
type ReferenceState struct {
	QRef Quat
	WRef Vec3
}

// AttitudeError returns the rotation-vector error of est relative to ref,
// computed from qErr = conj(qRef) ⊗ qEst with the shortest-rotation sign:
// eAtt = 2·sign(qErr.scalar)·qErr.vector. A zero scalar counts as positive.
func AttitudeError(qRef, qEst Quat) Vec3 {
	qErr := qRef.Conjugate().Mul(qEst)
	s := 1.0
	if qErr[0] < 0 {
		s = -1.0
	}
	return qErr.Vector().Scale(2 * s)
}

// RateError returns w - wRef.
func RateError(w, wRef Vec3) Vec3 { return w.Sub(wRef) }

// KineticEnergy returns ½·wᵀ·J·w.
func KineticEnergy(j Mat3, w Vec3) float64 { return 0.5 * w.Dot(j.MulVec(w)) }
