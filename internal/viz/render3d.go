package viz

import (
	"math"
	"sort"

	"github.com/san-kum/attsim/internal/attitude"
)

// Camera is a fixed-distance perspective camera looking down -Z. RotX and
// RotZ orbit the scene before projection.
type Camera struct {
	Distance   float64
	RotX, RotZ float64
	Zoom       float64
}

// NewCamera returns a camera with a three-quarter view of the origin.
func NewCamera() *Camera {
	return &Camera{Distance: 6, RotX: -1.1, RotZ: -0.6, Zoom: 1.0}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) view(p attitude.Vec3) attitude.Vec3 {
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p[0], p[1] = p[0]*cz-p[1]*sz, p[0]*sz+p[1]*cz
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p[1], p[2] = p[1]*cx-p[2]*sx, p[1]*sx+p[2]*cx
	return p.Scale(c.Zoom)
}

// Project maps a world point to sub-pixel screen coordinates. ok is false
// for points behind the camera or off screen.
func (c *Camera) Project(p attitude.Vec3, sw, sh int) (x, y int, depth float64, ok bool) {
	v := c.view(p)
	if v[2] >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - v[2])
	unit := float64(min(sw, sh)) / 3.0
	x = int(v[0]*scale*unit) + sw/2
	y = int(-v[1]*scale*unit) + sh/2
	return x, y, v[2], x >= 0 && x < sw && y >= 0 && y < sh
}

type Edge struct {
	Start, End attitude.Vec3
	Label      rune
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{} }

func (w *Wireframe) AddEdge(s, e attitude.Vec3, label rune) {
	w.Edges = append(w.Edges, Edge{s, e, label})
}

// Rotate returns a copy of w with every vertex rotated by q.
func (w *Wireframe) Rotate(q attitude.Quat) *Wireframe {
	out := &Wireframe{Edges: make([]Edge, len(w.Edges))}
	for i, e := range w.Edges {
		out.Edges[i] = Edge{q.Rotate(e.Start), q.Rotate(e.End), e.Label}
	}
	return out
}

// Merge appends the edges of o.
func (w *Wireframe) Merge(o *Wireframe) *Wireframe {
	w.Edges = append(w.Edges, o.Edges...)
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far-to-near. Edges with at least one visible
// endpoint are drawn and clipped by the canvas.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.Dims()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.End, sw, sh)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}

// BoxWireframe is a rectangular body with half-extents h.
func BoxWireframe(h attitude.Vec3) *Wireframe {
	w := NewWireframe()
	x, y, z := h[0], h[1], h[2]
	v := []attitude.Vec3{
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
	}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]], '#')
	}
	return w
}

func AxesWireframe(l float64) *Wireframe {
	w := NewWireframe()
	o := attitude.Vec3{}
	w.AddEdge(o, attitude.Vec3{l, 0, 0}, 'X')
	w.AddEdge(o, attitude.Vec3{0, l, 0}, 'Y')
	w.AddEdge(o, attitude.Vec3{0, 0, l}, 'Z')
	return w
}

// BodyFrame is the spacecraft box and its body axes rotated into the
// inertial frame by q.
func BodyFrame(q attitude.Quat) *Wireframe {
	body := BoxWireframe(attitude.Vec3{0.6, 0.4, 0.3}).Merge(AxesWireframe(1.2))
	return body.Rotate(q)
}
