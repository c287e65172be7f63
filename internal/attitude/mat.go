package attitude

import (
	"fmt"
	"math"
)

// Mat3 is a row-major 3x3 matrix.
type Mat3 [3][3]float64

// Eye returns the 3x3 identity matrix.
func Eye() Mat3 { return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} }

// Diag returns the diagonal matrix with d on its diagonal.
func Diag(d Vec3) Mat3 { return Mat3{{d[0], 0, 0}, {0, d[1], 0}, {0, 0, d[2]}} }

func (a Mat3) Transpose() Mat3 {
	var t Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = a[j][i]
		}
	}
	return t
}

func (a Mat3) Mul(b Mat3) Mat3 {
	var c Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			acc := 0.0
			for k := 0; k < 3; k++ {
				acc += a[i][k] * b[k][j]
			}
			c[i][j] = acc
		}
	}
	return c
}

// MulVec returns a·v.
func (a Mat3) MulVec(v Vec3) Vec3 {
	var out Vec3
	for i := 0; i < 3; i++ {
		out[i] = a[i][0]*v[0] + a[i][1]*v[1] + a[i][2]*v[2]
	}
	return out
}

func (a Mat3) Det() float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// Inverse returns a⁻¹ by the adjugate method. It fails with
// ErrSingularMatrix when |det(a)| < SingularTol.
func (a Mat3) Inverse() (Mat3, error) {
	det := a.Det()
	if math.Abs(det) < SingularTol {
		return Mat3{}, fmt.Errorf("%w: det=%g", ErrSingularMatrix, det)
	}
	inv := 1 / det

	var m Mat3
	m[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) * inv
	m[0][1] = -(a[0][1]*a[2][2] - a[0][2]*a[2][1]) * inv
	m[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) * inv

	m[1][0] = -(a[1][0]*a[2][2] - a[1][2]*a[2][0]) * inv
	m[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) * inv
	m[1][2] = -(a[0][0]*a[1][2] - a[0][2]*a[1][0]) * inv

	m[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) * inv
	m[2][1] = -(a[0][0]*a[2][1] - a[0][1]*a[2][0]) * inv
	m[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) * inv
	return m, nil
}
