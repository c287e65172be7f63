package attitude

import "math"

// Quat is a rotation quaternion [scalar, x, y, z].
type Quat [4]float64

// Identity is the zero-rotation quaternion.
var Identity = Quat{1, 0, 0, 0}

// FromAxisAngle builds the quaternion rotating by angle [rad] about axis.
// The axis is normalized first; a zero axis yields Identity.
func FromAxisAngle(axis Vec3, angle float64) Quat {
	u := axis.Normalize()
	if u.Dot(u) == 0 {
		return Identity
	}
	s, c := math.Sincos(angle / 2)
	return Quat{c, s * u[0], s * u[1], s * u[2]}
}

func (q Quat) Scalar() float64 { return q[0] }
func (q Quat) Vector() Vec3    { return Vec3{q[1], q[2], q[3]} }

func (q Quat) Norm() float64 {
	return math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
}

// Normalize returns the unit quaternion along q, or Identity when q is zero.
func (q Quat) Normalize() Quat {
	n2 := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
	if n2 == 0 {
		return Identity
	}
	inv := 1 / math.Sqrt(n2)
	return Quat{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

func (q Quat) Conjugate() Quat { return Quat{q[0], -q[1], -q[2], -q[3]} }

// Mul returns the Hamilton product q ⊗ r.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		q[0]*r[0] - q[1]*r[1] - q[2]*r[2] - q[3]*r[3],
		q[0]*r[1] + q[1]*r[0] + q[2]*r[3] - q[3]*r[2],
		q[0]*r[2] - q[1]*r[3] + q[2]*r[0] + q[3]*r[1],
		q[0]*r[3] + q[1]*r[2] - q[2]*r[1] + q[3]*r[0],
	}
}

// Rotate maps v through the rotation represented by the unit quaternion q.
func (q Quat) Rotate(v Vec3) Vec3 {
	p := q.Mul(Quat{0, v[0], v[1], v[2]}).Mul(q.Conjugate())
	return Vec3{p[1], p[2], p[3]}
}

// Rate returns dq/dt = ½·Ω(w)·q for body rate w.
func (q Quat) Rate(w Vec3) Quat {
	wx, wy, wz := w[0], w[1], w[2]
	return Quat{
		0.5 * (-wx*q[1] - wy*q[2] - wz*q[3]),
		0.5 * (wx*q[0] + wz*q[2] - wy*q[3]),
		0.5 * (wy*q[0] - wz*q[1] + wx*q[3]),
		0.5 * (wz*q[0] + wy*q[1] - wx*q[2]),
	}
}

func (q Quat) IsFinite() bool {
	for _, c := range q {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// EulerZYX returns yaw, pitch, roll [rad] of the unit quaternion q.
// Pitch is clamped to [-π/2, π/2] near gimbal lock.
func EulerZYX(q Quat) (yaw, pitch, roll float64) {
	sp := 2 * (q[0]*q[2] - q[3]*q[1])
	if sp >= 1 {
		sp = 1
	} else if sp <= -1 {
		sp = -1
	}
	pitch = math.Asin(sp)
	yaw = math.Atan2(2*(q[0]*q[3]+q[1]*q[2]), 1-2*(q[2]*q[2]+q[3]*q[3]))
	roll = math.Atan2(2*(q[0]*q[1]+q[2]*q[3]), 1-2*(q[1]*q[1]+q[2]*q[2]))
	return yaw, pitch, roll
}
