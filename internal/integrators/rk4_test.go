package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/dynamics"
	"github.com/san-kum/attsim/internal/sim"
)

func zeroTorque(float64, attitude.State) sim.Actuation { return sim.Actuation{} }

func TestRK4_SpinAboutX(t *testing.T) {
	dyn, err := dynamics.NewRigidBody(attitude.Eye())
	if err != nil {
		t.Fatalf("new dynamics failed: %v", err)
	}

	x0 := attitude.State{Q: attitude.Identity, W: attitude.Vec3{0.1, 0, 0}}
	traj := NewRK4().Integrate(dyn, 0, x0, 0.01, 100, zeroTorque)

	if len(traj.States) != 101 {
		t.Fatalf("expected 101 states, got %d", len(traj.States))
	}

	q := traj.States[100].Q
	want := attitude.Quat{math.Cos(0.05), math.Sin(0.05), 0, 0}
	for i := range want {
		if math.Abs(q[i]-want[i]) > 1e-9 {
			t.Errorf("q[%d] = %.12f, expected %.12f", i, q[i], want[i])
		}
	}
}

func TestRK4_TorqueSampledOncePerStep(t *testing.T) {
	dyn, err := dynamics.NewRigidBody(attitude.Eye())
	if err != nil {
		t.Fatalf("new dynamics failed: %v", err)
	}

	var calls []float64
	torque := func(tk float64, x attitude.State) sim.Actuation {
		calls = append(calls, tk)
		return sim.Actuation{Commanded: attitude.Vec3{1, 0, 0}, Applied: attitude.Vec3{1, 0, 0}}
	}

	traj := NewRK4().Integrate(dyn, 1.0, attitude.State{Q: attitude.Identity}, 0.1, 5, torque)

	if len(calls) != 5 {
		t.Fatalf("expected 5 torque calls, got %d", len(calls))
	}
	for k, tk := range calls {
		if math.Abs(tk-(1.0+0.1*float64(k))) > 1e-12 {
			t.Errorf("call %d at t=%f", k, tk)
		}
	}
	if len(traj.Actuations) != 5 {
		t.Errorf("expected 5 actuations, got %d", len(traj.Actuations))
	}

	// held torque on unit inertia: w = τ·t exactly
	if w := traj.States[5].W[0]; math.Abs(w-0.5) > 1e-12 {
		t.Errorf("expected wx 0.5, got %f", w)
	}
}

func TestIntegrators_UnitNorm(t *testing.T) {
	dyn, err := dynamics.NewRigidBody(attitude.Diag(attitude.Vec3{1, 2, 3}))
	if err != nil {
		t.Fatalf("new dynamics failed: %v", err)
	}
	x0 := attitude.State{Q: attitude.Quat{1, 0.2, 2, 5}.Normalize(), W: attitude.Vec3{0.8, 1.3, 2.1}}

	for name, integ := range map[string]sim.Integrator{"euler": NewEuler(), "rk4": NewRK4()} {
		t.Run(name, func(t *testing.T) {
			traj := integ.Integrate(dyn, 0, x0, 0.05, 400, zeroTorque)
			for k, x := range traj.States {
				if math.Abs(x.Q.Norm()-1) > 1e-12 {
					t.Fatalf("step %d: |q| = %.15f", k, x.Q.Norm())
				}
			}
		})
	}
}

func TestIntegrators_InitialStateUnmodified(t *testing.T) {
	dyn := dynamics.NewKinematic()
	// deliberately non-unit; element 0 must be returned as given
	x0 := attitude.State{Q: attitude.Quat{2, 0, 0, 0}, W: attitude.Vec3{0, 0, 1}}

	for name, integ := range map[string]sim.Integrator{"euler": NewEuler(), "rk4": NewRK4()} {
		t.Run(name, func(t *testing.T) {
			traj := integ.Integrate(dyn, 0, x0, 0.1, 3, zeroTorque)
			if traj.States[0] != x0 {
				t.Errorf("initial state modified: %v", traj.States[0])
			}
		})
	}
}

func TestIntegrators_KinematicZeroRateNoDrift(t *testing.T) {
	dyn := dynamics.NewKinematic()
	q0 := attitude.FromAxisAngle(attitude.Vec3{1, -2, 0.5}, 1.1)
	x0 := attitude.State{Q: q0}

	for name, integ := range map[string]sim.Integrator{"euler": NewEuler(), "rk4": NewRK4()} {
		t.Run(name, func(t *testing.T) {
			traj := integ.Integrate(dyn, 0, x0, 0.1, 1000, zeroTorque)
			for k, x := range traj.States {
				for i := range q0 {
					if math.Abs(x.Q[i]-q0[i]) > 1e-12 {
						t.Fatalf("step %d: q drifted to %v", k, x.Q)
					}
				}
			}
		})
	}
}

func TestIntegrators_RigidEquilibrium(t *testing.T) {
	dyn, err := dynamics.NewRigidBody(attitude.Diag(attitude.Vec3{3, 2, 1}))
	if err != nil {
		t.Fatalf("new dynamics failed: %v", err)
	}

	for name, integ := range map[string]sim.Integrator{"euler": NewEuler(), "rk4": NewRK4()} {
		t.Run(name, func(t *testing.T) {
			traj := integ.Integrate(dyn, 0, attitude.State{Q: attitude.Identity}, 0.01, 500, zeroTorque)
			for k, x := range traj.States {
				if x.W != (attitude.Vec3{}) {
					t.Fatalf("step %d: w = %v", k, x.W)
				}
			}
		})
	}
}
