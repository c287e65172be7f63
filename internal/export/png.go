package export

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/sim"
)

var componentColors = []color.Color{
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
}

// panel is one chart: a y-axis label and named component series.
type panel struct {
	title, ylabel string
	names         []string
	series        func(r *sim.Result) ([]float64, [][]float64)
}

var panels = map[string]panel{
	"quaternion": {"Attitude quaternion", "q", []string{"q0", "q1", "q2", "q3"}, func(r *sim.Result) ([]float64, [][]float64) {
		out := make([][]float64, 4)
		for _, s := range r.States {
			for i := range out {
				out[i] = append(out[i], s.Q[i])
			}
		}
		return r.Times, out
	}},
	"rate": {"Body rate", "w (rad/s)", []string{"wx", "wy", "wz"}, func(r *sim.Result) ([]float64, [][]float64) {
		ws := make([]attitude.Vec3, len(r.States))
		for i, s := range r.States {
			ws[i] = s.W
		}
		return r.Times, components(ws)
	}},
	"euler": {"Euler angles (ZYX)", "angle (deg)", []string{"yaw", "pitch", "roll"}, func(r *sim.Result) ([]float64, [][]float64) {
		out := make([][]float64, 3)
		for _, s := range r.States {
			yaw, pitch, roll := attitude.EulerZYX(s.Q)
			out[0] = append(out[0], yaw*180/math.Pi)
			out[1] = append(out[1], pitch*180/math.Pi)
			out[2] = append(out[2], roll*180/math.Pi)
		}
		return r.Times, out
	}},
	"attitude_error": {"Attitude error", "eAtt (rad)", []string{"ex", "ey", "ez"}, func(r *sim.Result) ([]float64, [][]float64) {
		return r.Times[:len(r.AttitudeErrors)], components(r.AttitudeErrors)
	}},
	"rate_error": {"Rate error", "eW (rad/s)", []string{"ewx", "ewy", "ewz"}, func(r *sim.Result) ([]float64, [][]float64) {
		return r.Times[:len(r.RateErrors)], components(r.RateErrors)
	}},
	"commanded": {"Commanded torque", "tau (N m)", []string{"tx", "ty", "tz"}, func(r *sim.Result) ([]float64, [][]float64) {
		return r.Times[:len(r.Commanded)], components(r.Commanded)
	}},
	"applied": {"Applied torque", "tau (N m)", []string{"tx", "ty", "tz"}, func(r *sim.Result) ([]float64, [][]float64) {
		return r.Times[:len(r.Applied)], components(r.Applied)
	}},
}

// SeriesNames lists the panels SavePNG accepts.
func SeriesNames() []string {
	names := make([]string, 0, len(panels))
	for n := range panels {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewPlot builds the chart for one named series without saving it.
func NewPlot(result *sim.Result, series string) (*plot.Plot, error) {
	pn, ok := panels[series]
	if !ok {
		return nil, fmt.Errorf("export: unknown series %q", series)
	}
	ts, cols := pn.series(result)
	if len(ts) == 0 {
		return nil, fmt.Errorf("export: series %q is empty", series)
	}

	p := plot.New()
	p.Title.Text = pn.title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = pn.ylabel
	p.Add(plotter.NewGrid())

	for i, col := range cols {
		pts := make(plotter.XYs, len(ts))
		for k := range ts {
			pts[k].X = ts[k]
			pts[k].Y = col[k]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = componentColors[i%len(componentColors)]
		p.Add(line)
		p.Legend.Add(pn.names[i], line)
	}
	p.Legend.Top = true

	return p, nil
}

// SavePNG writes one series chart to path. The file format follows the
// extension, so .svg and .pdf work as well.
func SavePNG(path string, result *sim.Result, series string) error {
	p, err := NewPlot(result, series)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create directory: %w", err)
		}
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// SaveAllPNG writes one <series>.png per panel into dir and returns the paths.
func SaveAllPNG(dir string, result *sim.Result) ([]string, error) {
	var paths []string
	for _, name := range SeriesNames() {
		path := filepath.Join(dir, name+".png")
		if err := SavePNG(path, result, name); err != nil {
			return paths, fmt.Errorf("export: %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func components(vs []attitude.Vec3) [][]float64 {
	out := make([][]float64, 3)
	for i := range out {
		out[i] = make([]float64, len(vs))
		for k, v := range vs {
			out[i][k] = v[i]
		}
	}
	return out
}
