package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attsim/internal/actuator"
	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/control"
	"github.com/san-kum/attsim/internal/dynamics"
	"github.com/san-kum/attsim/internal/integrators"
	"github.com/san-kum/attsim/internal/metrics"
	"github.com/san-kum/attsim/internal/reference"
	"github.com/san-kum/attsim/internal/sensor"
	"github.com/san-kum/attsim/internal/sim"
)

var identity = attitude.Quat{1, 0, 0, 0}

func rigid(j attitude.Mat3) *dynamics.RigidBody {
	dyn, err := dynamics.NewRigidBody(j)
	Expect(err).NotTo(HaveOccurred())
	return dyn
}

func build(dyn sim.Dynamics, ctrl sim.Controller, act sim.Actuator) *sim.Simulation {
	s, err := sim.New(dyn, integrators.NewRK4(), ctrl, sensor.NewIdeal(), act,
		reference.NewConstant(identity, attitude.Vec3{}))
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Simulation", func() {
	cfg := sim.Config{T0: 0, Dt: 0.01, NumSteps: 100}

	Context("with zero torque", func() {
		It("rotates 0.1 rad about x in one second", func() {
			s := build(rigid(attitude.Eye()), control.NewZero(), actuator.NewIdeal())
			res, err := s.Run(cfg, attitude.State{Q: identity, W: attitude.Vec3{0.1, 0, 0}})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.States).To(HaveLen(101))
			Expect(res.Applied).To(HaveLen(100))
			final, ok := res.Final()
			Expect(ok).To(BeTrue())
			q := final.Q
			Expect(q[0]).To(BeNumerically("~", math.Cos(0.05), 1e-6))
			Expect(q[1]).To(BeNumerically("~", math.Sin(0.05), 1e-6))
			Expect(q[2]).To(BeNumerically("~", 0, 1e-12))
			Expect(q[3]).To(BeNumerically("~", 0, 1e-12))
		})

		It("keeps a rigid body at rest", func() {
			s := build(rigid(attitude.Diag(attitude.Vec3{1, 2, 3})), control.NewZero(), actuator.NewIdeal())
			res, err := s.Run(cfg, attitude.State{Q: identity})
			Expect(err).NotTo(HaveOccurred())
			for _, x := range res.States {
				Expect(x.Q).To(Equal(identity))
				Expect(x.W).To(Equal(attitude.Vec3{}))
			}
		})

		It("leaves a kinematic body in place at zero rate", func() {
			s := build(dynamics.NewKinematic(), control.NewZero(), actuator.NewIdeal())
			q0 := attitude.FromAxisAngle(attitude.Vec3{0, 1, 0}, 0.3)
			res, err := s.Run(cfg, attitude.State{Q: q0})
			Expect(err).NotTo(HaveOccurred())
			for _, x := range res.States {
				for i := range x.Q {
					Expect(x.Q[i]).To(BeNumerically("~", q0[i], 1e-12))
				}
			}
		})

		It("records zero commanded and applied torque", func() {
			s := build(rigid(attitude.Eye()), control.NewZero(), actuator.NewIdeal())
			res, err := s.Run(cfg, attitude.State{Q: identity, W: attitude.Vec3{0, 0.2, 0}})
			Expect(err).NotTo(HaveOccurred())
			for k := range res.Applied {
				Expect(res.Commanded[k]).To(Equal(attitude.Vec3{}))
				Expect(res.Applied[k]).To(Equal(attitude.Vec3{}))
			}
		})
	})

	Context("with a PD controller", func() {
		newRun := func() *sim.Result {
			dyn := rigid(attitude.Diag(attitude.Vec3{10, 12, 8}))
			ctrl := control.NewPD(attitude.Vec3{2, 2, 2}, attitude.Vec3{6, 6, 6}, 20)
			s := build(dyn, ctrl, actuator.NewIdeal())
			for _, m := range metrics.Default(dyn) {
				s.AddMetric(m)
			}
			x0 := attitude.State{
				Q: attitude.FromAxisAngle(attitude.Vec3{1, 1, 0}, 0.4),
				W: attitude.Vec3{0.02, -0.01, 0.03},
			}
			res, err := s.Run(sim.Config{Dt: 0.05, NumSteps: 1200}, x0)
			Expect(err).NotTo(HaveOccurred())
			return res
		}

		It("is deterministic across fresh component sets", func() {
			a, b := newRun(), newRun()
			Expect(a.States).To(Equal(b.States))
			Expect(a.Applied).To(Equal(b.Applied))
			Expect(a.Metrics).To(Equal(b.Metrics))
		})

		It("drives the attitude error toward zero", func() {
			res := newRun()
			Expect(res.AttitudeErrors[0].Norm()).To(BeNumerically(">", 0.1))
			final, ok := res.Final()
			Expect(ok).To(BeTrue())
			Expect(final.Q.Norm()).To(BeNumerically("~", 1, 1e-12))
			Expect(res.AttitudeErrors[len(res.AttitudeErrors)-1].Norm()).To(BeNumerically("<", 1e-2))
			Expect(res.Metrics).To(HaveKey("control_effort"))
		})
	})

	Context("with reaction wheels", func() {
		It("saturates torque and speed", func() {
			axes := []attitude.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
			wheels, err := actuator.NewReactionWheels(axes,
				[]float64{0.01, 0.01, 0.01},
				[]float64{0.05, 0.05, 0.05},
				[]float64{100, 100, 100},
				nil)
			Expect(err).NotTo(HaveOccurred())

			ctrl := control.NewPD(attitude.Vec3{50, 50, 50}, attitude.Vec3{50, 50, 50}, 0)
			s := build(rigid(attitude.Eye()), ctrl, wheels)
			x0 := attitude.State{Q: attitude.FromAxisAngle(attitude.Vec3{1, 0, 0}, 1.0)}
			res, err := s.Run(sim.Config{Dt: 0.01, NumSteps: 300}, x0)
			Expect(err).NotTo(HaveOccurred())

			for k := range res.Applied {
				for i := 0; i < 3; i++ {
					Expect(math.Abs(res.Applied[k][i])).To(BeNumerically("<=", 0.05+1e-12))
				}
			}
			Expect(math.Abs(res.Commanded[0][0])).To(BeNumerically(">", 0.05))
			for _, v := range wheels.Speeds() {
				Expect(math.Abs(v)).To(BeNumerically("<=", 100))
			}
			Expect(math.Abs(wheels.Speeds()[0])).To(BeNumerically("~", 100, 1e-9))
		})
	})
})
