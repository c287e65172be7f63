// Package optim tunes scenario parameters by exhaustive search.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/attsim/internal/config"
	"github.com/san-kum/attsim/internal/experiment"
)

var (
	ErrEmptyGrid     = errors.New("optim: empty search grid")
	ErrUnknownMetric = errors.New("optim: metric not reported")
	ErrNoFeasible    = errors.New("optim: no grid point produced a finite metric")
)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch searches the product of ranges, one range per param. Param
// names are those accepted by experiment.ApplyParam.
func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Best is the grid point with the lowest metric value.
type Best struct {
	Params map[string]float64
	Value  float64
	Label  string
}

// Search runs every grid point of base in parallel and returns the one that
// minimizes metricName. Points whose metric is not finite are skipped; any
// failed run aborts the search.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metricName string, workers int) (Best, error) {
	if len(g.paramNames) == 0 || len(g.paramNames) != len(g.ranges) {
		return Best{}, ErrEmptyGrid
	}

	var points []map[string]float64
	g.enumerate(0, map[string]float64{}, &points)
	if len(points) == 0 {
		return Best{}, ErrEmptyGrid
	}

	variants := make([]experiment.Variant, 0, len(points))
	for _, p := range points {
		c := base.Clone()
		for name, v := range p {
			if err := experiment.ApplyParam(c, name, v); err != nil {
				return Best{}, err
			}
		}
		variants = append(variants, experiment.Variant{Label: label(p), Config: c})
	}

	logrus.Infof("grid search over %d points minimizing %s", len(points), metricName)

	results, err := experiment.RunBatch(ctx, nil, variants, workers)
	if err != nil {
		return Best{}, err
	}

	best := Best{Value: math.Inf(1)}
	for i, res := range results {
		val, ok := res.Metrics[metricName]
		if !ok {
			return Best{}, fmt.Errorf("%w: %q", ErrUnknownMetric, metricName)
		}
		logrus.Debugf("  %s: %s = %g", variants[i].Label, metricName, val)
		if math.IsNaN(val) || math.IsInf(val, 0) {
			continue
		}
		if val < best.Value {
			best = Best{Params: points[i], Value: val, Label: variants[i].Label}
		}
	}
	if best.Params == nil {
		return Best{}, ErrNoFeasible
	}
	return best, nil
}

func (g *GridSearch) enumerate(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		p := make(map[string]float64, len(current))
		for k, v := range current {
			p[k] = v
		}
		*out = append(*out, p)
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		g.enumerate(depth+1, current, out)
	}
	delete(current, name)
}

func label(p map[string]float64) string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%g", k, p[k])
	}
	return strings.Join(parts, ",")
}
