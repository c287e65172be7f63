// Package control provides attitude feedback controllers.
//
// Controllers implement [sim.Controller] and compute a commanded body torque
// from the estimated state and the reference:
//
//   - [Zero]: always commands zero torque
//   - [PD]: diagonal proportional-derivative law on attitude and rate error
//   - [LQR]: full-state feedback with a fixed 3x6 gain
//
// PD and LQR optionally run at a fixed control rate slower than the
// integration step. Between updates they hold the last computed torque, so
// both are stateful and must not be shared between concurrent runs.
//
// # Usage
//
//	pd := control.NewPD(attitude.Vec3{2, 2, 2}, attitude.Vec3{4, 4, 4}, 10)
//	gain, err := control.SynthesizeLQR(j, qW, wW, rW)
//	lqr := control.NewLQR(gain, 0)
package control
