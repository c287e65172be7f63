package attitude

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttitudeError_ZeroWhenAligned(t *testing.T) {
	q := FromAxisAngle(Vec3{1, -1, 2}, 0.8)
	e := AttitudeError(q, q)
	assert.InDelta(t, 0.0, e.Norm(), 1e-12)
}

func TestAttitudeError_SmallRotation(t *testing.T) {
	// GIVEN an estimate rotated 0.1 rad about z from the reference
	qEst := FromAxisAngle(Vec3{0, 0, 1}, 0.1)

	// WHEN the error is computed against identity
	e := AttitudeError(Identity, qEst)

	// THEN it is approximately the rotation vector
	assert.InDelta(t, 0.0, e[0], 1e-12)
	assert.InDelta(t, 0.0, e[1], 1e-12)
	assert.InDelta(t, 2*math.Sin(0.05), e[2], 1e-12)
}

func TestAttitudeError_ShortestRotation(t *testing.T) {
	// q and -q describe the same attitude; the error must agree.
	qEst := FromAxisAngle(Vec3{0, 1, 0}, 0.4)
	neg := Quat{-qEst[0], -qEst[1], -qEst[2], -qEst[3]}

	e1 := AttitudeError(Identity, qEst)
	e2 := AttitudeError(Identity, neg)
	for i := range e1 {
		assert.InDelta(t, e1[i], e2[i], 1e-12)
	}
}

func TestRateError(t *testing.T) {
	assert.Equal(t, Vec3{0.1, -0.2, 0}, RateError(Vec3{0.1, 0, 0.3}, Vec3{0, 0.2, 0.3}))
}

func TestKineticEnergy(t *testing.T) {
	j := Diag(Vec3{2, 3, 4})
	assert.InDelta(t, 0.5*(2+12+36), KineticEnergy(j, Vec3{1, 2, 3}), 1e-12)
}

func TestState_IsValid(t *testing.T) {
	assert.True(t, State{Q: Identity}.IsValid())
	assert.False(t, State{Q: Identity, W: Vec3{math.NaN(), 0, 0}}.IsValid())
}
