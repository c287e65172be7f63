package optim

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/attsim/internal/config"
	"github.com/san-kum/attsim/internal/experiment"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func TestGridSearch_PrefersStiffness(t *testing.T) {
	// GIVEN a held attitude offset and a grid that includes kp = 0
	base := config.GetPreset("hold")
	g := NewGridSearch([]string{"kp", "kd"}, [][]float64{{0, 2}, {8}})

	// WHEN searching for the smallest final error
	best, err := g.Search(context.Background(), base, "final_attitude_error", 2)

	// THEN the point with attitude feedback wins
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"kp": 2, "kd": 8}, best.Params)
	assert.Equal(t, "kd=8,kp=2", best.Label)
	assert.Less(t, best.Value, 1e-3)

	// the base config is untouched
	assert.Equal(t, config.GetPreset("hold").KpAtt, base.KpAtt)
}

func TestGridSearch_Enumerate(t *testing.T) {
	g := NewGridSearch([]string{"kp", "kd"}, [][]float64{{1, 2, 3}, {4, 5}})
	var points []map[string]float64
	g.enumerate(0, map[string]float64{}, &points)

	require.Len(t, points, 6)
	assert.Equal(t, map[string]float64{"kp": 1, "kd": 4}, points[0])
	assert.Equal(t, map[string]float64{"kp": 3, "kd": 5}, points[5])
}

func TestGridSearch_Errors(t *testing.T) {
	base := config.GetPreset("hold")
	base.NumSteps = 10
	ctx := context.Background()

	_, err := NewGridSearch(nil, nil).Search(ctx, base, "control_effort", 0)
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = NewGridSearch([]string{"kp"}, [][]float64{{}}).Search(ctx, base, "control_effort", 0)
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = NewGridSearch([]string{"mass"}, [][]float64{{1}}).Search(ctx, base, "control_effort", 0)
	assert.ErrorIs(t, err, experiment.ErrUnknownParam)

	_, err = NewGridSearch([]string{"kp"}, [][]float64{{1}}).Search(ctx, base, "overshoot", 0)
	assert.ErrorIs(t, err, ErrUnknownMetric)
}
