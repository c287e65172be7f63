package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/attsim/internal/attitude"
)

// PlotSeries renders one scalar series as an ASCII line chart. Series longer
// than width are decimated by striding.
func PlotSeries(caption string, data []float64, width, height int) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(Downsample(data, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// PlotMulti overlays several equal-length series in one chart.
func PlotMulti(caption string, series [][]float64, width, height int) string {
	if len(series) == 0 || len(series[0]) == 0 {
		return ""
	}
	ds := make([][]float64, len(series))
	for i, s := range series {
		ds[i] = Downsample(s, width)
	}
	return asciigraph.PlotMany(ds,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue, asciigraph.Yellow),
	)
}

// Downsample keeps every k-th point so that about n remain, always
// including the last.
func Downsample(data []float64, n int) []float64 {
	if n <= 0 || len(data) <= n {
		return data
	}
	step := (len(data) + n - 1) / n
	out := make([]float64, 0, n+1)
	for i := 0; i < len(data); i += step {
		out = append(out, data[i])
	}
	if (len(data)-1)%step != 0 {
		out = append(out, data[len(data)-1])
	}
	return out
}

// Norms returns the Euclidean norm of each vector.
func Norms(vs []attitude.Vec3) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Norm()
	}
	return out
}

// Component extracts component i of each vector.
func Component(vs []attitude.Vec3, i int) []float64 {
	out := make([]float64, len(vs))
	for k, v := range vs {
		out[k] = v[i]
	}
	return out
}
