package control

import "github.com/san-kum/attsim/internal/attitude"

type Zero struct{}

func NewZero() *Zero {
	return &Zero{}
}

func (z *Zero) Command(_ float64, _ attitude.State, _ attitude.ReferenceState) attitude.Vec3 {
	return attitude.Vec3{}
}
