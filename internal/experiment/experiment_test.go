package experiment

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/attsim/internal/actuator"
	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/config"
	"github.com/san-kum/attsim/internal/control"
	"github.com/san-kum/attsim/internal/sim"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"euler", "rk4"}, r.Names(KindIntegrator))
	assert.Equal(t, []string{"lqr", "pd", "zero"}, r.Names(KindController))
	assert.Equal(t, []string{"ideal", "reaction_wheels"}, r.Names(KindActuator))
	assert.Empty(t, r.Names("bogus"))
}

func TestRegistry_Unknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.GetIntegrator("verlet")
	assert.ErrorIs(t, err, ErrUnknownComponent)

	cfg := config.DefaultConfig()
	cfg.Reference = "sine"
	_, err = r.GetReference(cfg)
	assert.ErrorIs(t, err, ErrUnknownComponent)
}

func TestRegistry_BuildAllPresets(t *testing.T) {
	r := NewRegistry()
	for _, name := range config.ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := config.GetPreset(name)
			cfg.NumSteps = 50
			s, err := r.Build(cfg)
			require.NoError(t, err)

			res, err := s.Run(SimConfig(cfg), cfg.InitialState())
			require.NoError(t, err)
			assert.Len(t, res.States, 51)
			assert.Contains(t, res.Metrics, "control_effort")
		})
	}
}

func TestRegistry_BuildFreshComponents(t *testing.T) {
	r := NewRegistry()
	cfg := config.GetPreset("wheels")

	a, err := r.Build(cfg)
	require.NoError(t, err)
	b, err := r.Build(cfg)
	require.NoError(t, err)
	assert.NotSame(t, a.Actuator(), b.Actuator())
	assert.IsType(t, &actuator.ReactionWheels{}, a.Actuator())
}

func TestRegistry_BuildInvalid(t *testing.T) {
	r := NewRegistry()

	cfg := config.DefaultConfig()
	cfg.Inertia = attitude.Mat3{{1, 0.5, 0}, {0, 1, 0}, {0, 0, 1}}
	_, err := r.Build(cfg)
	assert.ErrorIs(t, err, config.ErrInertiaNotSymmetric)

	cfg = config.GetPreset("wheels")
	cfg.Wheels.MaxSpeeds = cfg.Wheels.MaxSpeeds[:1]
	_, err = r.Build(cfg)
	assert.ErrorIs(t, err, actuator.ErrWheelParamMismatch)
}

func TestGain_ExplicitAndSynthesized(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Controller = config.ControllerLQR
	cfg.KLQR = [][]float64{{1, 0, 0, 0, 0, 0}, {0, 1, 0, 0, 0, 0}, {0, 0, 1, 0, 0, 0}}

	k, err := Gain(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, k[2][2])

	cfg.KLQR = nil
	cfg.Inertia = attitude.Eye()
	cfg.LQRWeights = config.LQRWeights{Q: attitude.Vec3{1, 1, 1}, W: attitude.Vec3{1, 1, 1}, R: attitude.Vec3{1, 1, 1}}
	k, err = Gain(cfg)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(3), k[0][3], 1e-8)

	cfg.LQRWeights.R = attitude.Vec3{}
	_, err = Gain(cfg)
	assert.ErrorIs(t, err, control.ErrInvalidWeights)
}

func TestExperiment_Run(t *testing.T) {
	cfg := config.GetPreset("wheels")
	cfg.NumSteps = 200

	e := New(cfg, nil)
	_, err := e.Run(context.Background())
	assert.Error(t, err, "run before setup should fail")

	require.NoError(t, e.Setup())
	res, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Applied, 200)
	assert.Len(t, e.WheelSpeeds(), 3)
	assert.NotNil(t, e.GetSimulator())
}

func TestExperiment_Canceled(t *testing.T) {
	e := New(config.GetPreset("hold"), NewRegistry())
	require.NoError(t, e.Setup())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExperiment_WheelSpeedsNilForIdeal(t *testing.T) {
	e := New(config.GetPreset("hold"), nil)
	require.NoError(t, e.Setup())
	assert.Nil(t, e.WheelSpeeds())
}

func TestParamSweep(t *testing.T) {
	base := config.GetPreset("hold")
	base.NumSteps = 100

	variants, err := ParamSweep(base, "kp", []float64{0.5, 1, 4})
	require.NoError(t, err)
	require.Len(t, variants, 3)
	assert.Equal(t, "kp=4", variants[2].Label)
	assert.Equal(t, attitude.Vec3{4, 4, 4}, variants[2].Config.KpAtt)
	assert.Equal(t, config.DefaultKp, base.KpAtt[0], "base must not be modified")

	results, err := RunBatch(context.Background(), nil, variants, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// a stiffer loop closes more of the initial error within the same time
	assert.Less(t, results[2].Metrics["final_attitude_error"], results[0].Metrics["final_attitude_error"])

	_, err = ParamSweep(base, "ki", []float64{1})
	assert.ErrorIs(t, err, ErrUnknownParam)
}

func TestIntegratorVariants_Deterministic(t *testing.T) {
	base := config.GetPreset("slew")
	base.NumSteps = 300

	variants := IntegratorVariants(base, []string{"rk4", "rk4", "euler"})
	results, err := RunBatch(context.Background(), nil, variants, 0)
	require.NoError(t, err)

	assert.Equal(t, results[0].States, results[1].States)
	assert.NotEqual(t, results[0].States, results[2].States)
}

func TestExperiment_ControllerParams(t *testing.T) {
	e := New(config.GetPreset("hold"), nil)
	assert.Nil(t, e.ControllerParams(), "no params before setup")
	require.NoError(t, e.Setup())

	params := e.ControllerParams()
	assert.Equal(t, config.DefaultKp, params["kp_x"])
	assert.Equal(t, config.DefaultKd, params["kd_z"])

	ballistic := New(config.GetPreset("ballistic"), nil)
	require.NoError(t, ballistic.Setup())
	assert.Nil(t, ballistic.ControllerParams())
}

func TestExperiment_Metadata(t *testing.T) {
	cfg := config.GetPreset("wheels")
	cfg.NumSteps = 100
	e := New(cfg, nil)
	require.NoError(t, e.Setup())
	_, err := e.Run(context.Background())
	require.NoError(t, err)

	h, ok := e.WheelMomentum()
	require.True(t, ok)
	assert.Greater(t, h.Norm(), 0.0)

	meta := e.Metadata()
	assert.Equal(t, "wheels", meta.Scenario)
	assert.Equal(t, h[:], meta.WheelMomentum)
	assert.Len(t, meta.WheelSpeeds, 3)
	assert.Contains(t, meta.ControllerParams, "kp_x")

	hold := New(config.GetPreset("hold"), nil)
	require.NoError(t, hold.Setup())
	_, ok = hold.WheelMomentum()
	assert.False(t, ok)
	assert.Nil(t, hold.Metadata().WheelMomentum)
}

func TestTraceObserver(t *testing.T) {
	// GIVEN a 100-step run traced every 25 samples
	cfg := config.GetPreset("hold")
	cfg.NumSteps = 100
	e := New(cfg, nil)
	require.NoError(t, e.Setup())

	logger, hook := logtest.NewNullLogger()
	e.GetSimulator().AddObserver(NewTraceObserver(logger, 25, cfg.NumSteps))

	// WHEN it runs
	_, err := e.Run(context.Background())
	require.NoError(t, err)

	// THEN steps 0, 25, 50, 75 and the final sample are logged
	entries := hook.AllEntries()
	require.Len(t, entries, 5)
	for i, entry := range entries {
		assert.Equal(t, i*25, entry.Data["step"])
		assert.Contains(t, entry.Data, "att_err")
	}
	assert.Contains(t, entries[0].Data, "torque")
	assert.NotContains(t, entries[4].Data, "torque")
}

func TestTraceObserver_FinalOnly(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	obs := NewTraceObserver(logger, 0, 3)
	for k := 0; k <= 3; k++ {
		obs.OnSample(sim.Sample{Step: k, HasTorque: k < 3})
	}
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, 3, hook.LastEntry().Data["step"])
}
