package actuator

import "github.com/san-kum/attsim/internal/attitude"

type Ideal struct{}

func NewIdeal() *Ideal {
	return &Ideal{}
}

func (i *Ideal) Apply(_ float64, _ attitude.State, cmd attitude.Vec3) attitude.Vec3 {
	return cmd
}
