package dynamics

import (
	"fmt"

	"github.com/san-kum/attsim/internal/attitude"
)

// RigidBody integrates Euler's equation ẇ = J⁻¹(τ − ω × Jω) with a body-frame
// inertia J fixed at construction.
type RigidBody struct {
	j    attitude.Mat3
	jInv attitude.Mat3
}

// NewRigidBody precomputes the inverse of inertia. A singular inertia fails
// with an error wrapping attitude.ErrSingularMatrix.
func NewRigidBody(inertia attitude.Mat3) (*RigidBody, error) {
	inv, err := inertia.Inverse()
	if err != nil {
		return nil, fmt.Errorf("dynamics: rigid body inertia: %w", err)
	}
	return &RigidBody{j: inertia, jInv: inv}, nil
}

func (r *RigidBody) Inertia() attitude.Mat3 { return r.j }

func (r *RigidBody) Derivative(_ float64, x attitude.State, tau attitude.Vec3) attitude.State {
	jw := r.j.MulVec(x.W)
	rhs := tau.Sub(x.W.Cross(jw))
	return attitude.State{
		Q: x.Q.Rate(x.W),
		W: r.jInv.MulVec(rhs),
	}
}

// Energy returns the rotational kinetic energy of x.
func (r *RigidBody) Energy(x attitude.State) float64 {
	return attitude.KineticEnergy(r.j, x.W)
}
