package actuator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/sim"
)

var (
	_ sim.Actuator = (*Ideal)(nil)
	_ sim.Actuator = (*ReactionWheels)(nil)
)

func orthogonalWheels(t *testing.T, maxTorque, maxSpeed float64) *ReactionWheels {
	t.Helper()
	rw, err := NewReactionWheels(
		[]attitude.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[]float64{0.01, 0.01, 0.01},
		[]float64{maxTorque, maxTorque, maxTorque},
		[]float64{maxSpeed, maxSpeed, maxSpeed},
		nil,
	)
	require.NoError(t, err)
	return rw
}

func TestIdeal(t *testing.T) {
	cmd := attitude.Vec3{1, -2, 3}
	assert.Equal(t, cmd, NewIdeal().Apply(0, attitude.State{}, cmd))
}

func TestReactionWheels_ParamMismatch(t *testing.T) {
	tests := []struct {
		name     string
		inertias []float64
		initial  []float64
	}{
		{"short inertias", []float64{1}, nil},
		{"bad initial speeds", []float64{1, 1}, []float64{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReactionWheels(
				[]attitude.Vec3{{1, 0, 0}, {0, 1, 0}},
				tt.inertias,
				[]float64{1, 1},
				[]float64{1, 1},
				tt.initial,
			)
			assert.ErrorIs(t, err, ErrWheelParamMismatch)
		})
	}
}

func TestReactionWheels_UnsaturatedPassesCommand(t *testing.T) {
	rw := orthogonalWheels(t, 1, 1e6)
	cmd := attitude.Vec3{0.1, -0.2, 0.05}

	got := rw.Apply(0, attitude.State{}, cmd)
	for i := range cmd {
		assert.InDelta(t, cmd[i], got[i], 1e-15)
	}
}

func TestReactionWheels_FirstCallNoSpeedChange(t *testing.T) {
	rw := orthogonalWheels(t, 1, 1e6)

	rw.Apply(5.0, attitude.State{}, attitude.Vec3{0.5, 0.5, 0.5})
	assert.Equal(t, []float64{0, 0, 0}, rw.Speeds())
}

func TestReactionWheels_SpeedIntegration(t *testing.T) {
	rw := orthogonalWheels(t, 1, 1e6)

	rw.Apply(0, attitude.State{}, attitude.Vec3{0.01, 0, 0})
	rw.Apply(2, attitude.State{}, attitude.Vec3{0.01, 0, 0})

	// wheel torque -0.01 on 0.01 kg·m² for 2 s = -2 rad/s
	want := -2 * 60 / (2 * math.Pi)
	assert.InDelta(t, want, rw.Speeds()[0], 1e-9)
	assert.InDelta(t, 0, rw.Speeds()[1], 1e-15)

	h := rw.Momentum()
	assert.InDelta(t, -0.02, h[0], 1e-12)
}

func TestReactionWheels_Saturation(t *testing.T) {
	const maxTorque, maxSpeed = 0.05, 3000.0
	rw := orthogonalWheels(t, maxTorque, maxSpeed)
	cmd := attitude.Vec3{100, -100, 50}

	for k := 0; k < 10000; k++ {
		got := rw.Apply(float64(k)*0.1, attitude.State{}, cmd)
		for i := range got {
			if math.Abs(got[i]) > maxTorque+1e-15 {
				t.Fatalf("step %d: |tau[%d]| = %g exceeds %g", k, i, math.Abs(got[i]), maxTorque)
			}
		}
		for i, s := range rw.Speeds() {
			if math.Abs(s) > maxSpeed {
				t.Fatalf("step %d: wheel %d speed %g exceeds %g", k, i, s, maxSpeed)
			}
		}
	}

	assert.Equal(t, []float64{-maxSpeed, maxSpeed, -maxSpeed}, rw.Speeds())
}

func TestReactionWheels_AxisNormalization(t *testing.T) {
	rw, err := NewReactionWheels(
		[]attitude.Vec3{{2, 0, 0}, {0, 0, 0}},
		[]float64{1, 1},
		[]float64{10, 10},
		[]float64{100, 100},
		[]float64{0, 0},
	)
	require.NoError(t, err)

	got := rw.Apply(0, attitude.State{}, attitude.Vec3{0.3, 0.4, 0})
	assert.InDelta(t, 0.3, got[0], 1e-15)
	assert.InDelta(t, 0, got[1], 1e-15)
	assert.Equal(t, 2, rw.Len())
}

func TestReactionWheels_InitialSpeeds(t *testing.T) {
	rw, err := NewReactionWheels(
		[]attitude.Vec3{{0, 0, 1}},
		[]float64{0.1},
		[]float64{1},
		[]float64{6000},
		[]float64{1200},
	)
	require.NoError(t, err)
	assert.Equal(t, []float64{1200}, rw.Speeds())
}
