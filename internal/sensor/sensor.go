// Package sensor models attitude measurement.
package sensor

import "github.com/san-kum/attsim/internal/attitude"

// Ideal reports the true attitude without error.
type Ideal struct{}

func NewIdeal() *Ideal {
	return &Ideal{}
}

func (i *Ideal) MeasureAttitude(_ float64, truth attitude.State) attitude.Quat {
	return truth.Q
}
