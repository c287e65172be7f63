package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/viz"
)

// CanvasToSVG draws every lit Braille dot of canvas as a circle. scale is
// the size of one sub-pixel in SVG units.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	sw, sh := canvas.Dims()
	width := float64(sw) * scale
	height := float64(sh) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ffcc">
`, width, height, width, height)

	r := scale * 0.4
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
				(float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// FrameSVG renders the body frame at attitude q as an SVG snapshot.
func FrameSVG(q attitude.Quat, cols, rows int, scale float64) string {
	c := viz.NewCanvas(cols, rows)
	viz.Render3D(c, viz.BodyFrame(q), viz.NewCamera())
	return CanvasToSVG(c, scale)
}
