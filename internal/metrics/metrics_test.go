package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/dynamics"
	"github.com/san-kum/attsim/internal/sim"
)

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()
	m.Observe(sim.Sample{HasTorque: true, Actuation: sim.Actuation{Applied: attitude.Vec3{1, -2, 0}}})
	m.Observe(sim.Sample{HasTorque: true, Actuation: sim.Actuation{Applied: attitude.Vec3{0, 0, 1}}})
	// final sample carries no torque
	m.Observe(sim.Sample{Actuation: sim.Actuation{Applied: attitude.Vec3{100, 0, 0}}})

	if v := m.Value(); math.Abs(v-2) > 1e-12 {
		t.Errorf("expected effort 2, got %f", v)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero effort after reset")
	}
}

func TestEnergy(t *testing.T) {
	m := NewEnergy(attitude.Diag(attitude.Vec3{2, 2, 2}))
	m.Observe(sim.Sample{State: attitude.State{W: attitude.Vec3{1, 0, 0}}})
	m.Observe(sim.Sample{State: attitude.State{W: attitude.Vec3{0, 0, 0}}})

	assert.InDelta(t, 0.5, m.Value(), 1e-12)

	m.Reset()
	assert.Equal(t, 0.0, m.Value())
}

func TestEnergyDrift(t *testing.T) {
	dyn, err := dynamics.NewRigidBody(attitude.Eye())
	if err != nil {
		t.Fatal(err)
	}
	m := NewEnergyDrift(dyn)

	m.Observe(sim.Sample{State: attitude.State{W: attitude.Vec3{1, 0, 0}}})
	m.Observe(sim.Sample{State: attitude.State{W: attitude.Vec3{1.1, 0, 0}}})
	m.Observe(sim.Sample{State: attitude.State{W: attitude.Vec3{1, 0, 0}}})

	assert.InDelta(t, 0.21, m.Value(), 1e-12)
}

func TestEnergyDrift_ZeroInitialEnergy(t *testing.T) {
	dyn, err := dynamics.NewRigidBody(attitude.Eye())
	if err != nil {
		t.Fatal(err)
	}
	m := NewEnergyDrift(dyn)
	m.Observe(sim.Sample{})
	m.Observe(sim.Sample{State: attitude.State{W: attitude.Vec3{1, 0, 0}}})
	assert.Equal(t, 0.0, m.Value())
}

func TestAttitudeErrorMetrics(t *testing.T) {
	rms := NewAttitudeErrorRMS()
	final := NewFinalAttitudeError()

	for _, e := range []attitude.Vec3{{3, 4, 0}, {0, 0, 0}, {0, 1, 0}} {
		s := sim.Sample{AttitudeError: e}
		rms.Observe(s)
		final.Observe(s)
	}

	assert.InDelta(t, math.Sqrt(26.0/3.0), rms.Value(), 1e-12)
	assert.Equal(t, 1.0, final.Value())
}

func TestStability(t *testing.T) {
	m := NewStability(1.0)
	assert.Equal(t, 1.0, m.Value())

	m.Observe(sim.Sample{State: attitude.State{W: attitude.Vec3{0.5, 0, 0}}})
	m.Observe(sim.Sample{State: attitude.State{W: attitude.Vec3{2, 0, 0}}})
	assert.Equal(t, 0.5, m.Value())
}

func TestDefault(t *testing.T) {
	rigid, err := dynamics.NewRigidBody(attitude.Eye())
	if err != nil {
		t.Fatal(err)
	}

	names := func(ms []sim.Metric) []string {
		var out []string
		for _, m := range ms {
			out = append(out, m.Name())
		}
		return out
	}

	assert.Contains(t, names(Default(rigid)), "energy_drift")
	assert.Contains(t, names(Default(rigid)), "kinetic_energy")
	assert.NotContains(t, names(Default(dynamics.NewKinematic())), "energy_drift")
	assert.NotContains(t, names(Default(dynamics.NewKinematic())), "kinetic_energy")
}
