package reference

import (
	"testing"

	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/sim"
)

var (
	_ sim.Reference = (*Constant)(nil)
	_ sim.Reference = (*Spin)(nil)
)

func TestConstant(t *testing.T) {
	q := attitude.FromAxisAngle(attitude.Vec3{0, 0, 1}, 0.5)
	w := attitude.Vec3{0, 0, 0.01}
	ref := NewConstant(q, w)

	for _, tk := range []float64{0, 10, 1e6} {
		got := ref.Reference(tk, attitude.State{Q: attitude.Identity, W: attitude.Vec3{1, 2, 3}})
		if got.QRef != q || got.WRef != w {
			t.Errorf("t=%g: expected (%v, %v), got (%v, %v)", tk, q, w, got.QRef, got.WRef)
		}
	}
}

func TestSpin_TracksEstimate(t *testing.T) {
	ref := NewSpin(attitude.Vec3{0, 0, 0.2})
	est := attitude.State{Q: attitude.FromAxisAngle(attitude.Vec3{1, 1, 1}, 2), W: attitude.Vec3{0.5, 0, 0}}

	got := ref.Reference(3, est)
	if got.QRef != est.Q {
		t.Errorf("expected qRef to follow estimate %v, got %v", est.Q, got.QRef)
	}
	if got.WRef != (attitude.Vec3{0, 0, 0.2}) {
		t.Errorf("expected constant wRef, got %v", got.WRef)
	}
	if e := attitude.AttitudeError(got.QRef, est.Q); e.Norm() > 1e-12 {
		t.Errorf("expected zero attitude error, got %v", e)
	}
}
