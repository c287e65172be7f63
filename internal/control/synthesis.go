package control

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/attsim/internal/attitude"
)

const (
	nState = 6
	nInput = 3

	riccatiTol     = 1e-10
	riccatiMaxIter = 50
)

// SynthesizeLQR computes the infinite-horizon LQR gain for the linearized
// attitude error dynamics
//
//	d/dt eAtt = eW
//	d/dt eW   = J⁻¹ τ
//
// with Q = diag(qW, wW) and R = diag(rW). The Riccati equation is solved by
// Newton-Kleinman iteration started from the stabilizing gain [J, 2J].
func SynthesizeLQR(j attitude.Mat3, qW, wW, rW attitude.Vec3) (Gain, error) {
	for i := 0; i < 3; i++ {
		if qW[i] < 0 || wW[i] < 0 || !(rW[i] > 0) {
			return Gain{}, fmt.Errorf("%w: q=%v w=%v r=%v", ErrInvalidWeights, qW, wW, rW)
		}
	}

	jInv, err := j.Inverse()
	if err != nil {
		return Gain{}, fmt.Errorf("control: lqr inertia: %w", err)
	}

	a := mat.NewDense(nState, nState, nil)
	for i := 0; i < 3; i++ {
		a.Set(i, 3+i, 1)
	}

	b := mat.NewDense(nState, nInput, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			b.Set(3+r, c, jInv[r][c])
		}
	}

	q := mat.NewDense(nState, nState, nil)
	for i := 0; i < 3; i++ {
		q.Set(i, i, qW[i])
		q.Set(3+i, 3+i, wW[i])
	}

	rInv := mat.NewDense(nInput, nInput, nil)
	r := mat.NewDense(nInput, nInput, nil)
	for i := 0; i < 3; i++ {
		r.Set(i, i, rW[i])
		rInv.Set(i, i, 1/rW[i])
	}

	k := mat.NewDense(nInput, nState, nil)
	for rr := 0; rr < 3; rr++ {
		for c := 0; c < 3; c++ {
			k.Set(rr, c, j[rr][c])
			k.Set(rr, 3+c, 2*j[rr][c])
		}
	}

	var rInvBt mat.Dense
	rInvBt.Mul(rInv, b.T())

	for iter := 0; iter < riccatiMaxIter; iter++ {
		var bk, acl mat.Dense
		bk.Mul(b, k)
		acl.Sub(a, &bk)

		// rhs = Q + KᵀRK
		var rk, ktrk, rhs mat.Dense
		rk.Mul(r, k)
		ktrk.Mul(k.T(), &rk)
		rhs.Add(q, &ktrk)

		p, err := solveLyapunov(&acl, &rhs)
		if err != nil {
			return Gain{}, fmt.Errorf("control: lyapunov solve at iteration %d: %w", iter, err)
		}

		var next mat.Dense
		next.Mul(&rInvBt, p)

		var diff mat.Dense
		diff.Sub(&next, k)
		delta := mat.Norm(&diff, 2)
		k = &next

		if delta < riccatiTol {
			return toGain(k)
		}
	}

	return Gain{}, fmt.Errorf("%w after %d iterations", ErrNoConvergence, riccatiMaxIter)
}

// solveLyapunov solves Aᵀ P + P A = -M for P by vectorizing into a dense
// n²×n² system indexed row-major over P.
func solveLyapunov(a *mat.Dense, m *mat.Dense) (*mat.Dense, error) {
	n, _ := a.Dims()
	nn := n * n

	lhs := mat.NewDense(nn, nn, nil)
	rhs := mat.NewVecDense(nn, nil)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			row := i*n + j
			for k := 0; k < n; k++ {
				lhs.Set(row, k*n+j, lhs.At(row, k*n+j)+a.At(k, i))
				lhs.Set(row, i*n+k, lhs.At(row, i*n+k)+a.At(k, j))
			}
			rhs.SetVec(row, -m.At(i, j))
		}
	}

	var x mat.VecDense
	if err := x.SolveVec(lhs, rhs); err != nil {
		return nil, err
	}

	p := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p.Set(i, j, 0.5*(x.AtVec(i*n+j)+x.AtVec(j*n+i)))
		}
	}
	return p, nil
}

func toGain(k *mat.Dense) (Gain, error) {
	var g Gain
	for i := 0; i < nInput; i++ {
		for j := 0; j < nState; j++ {
			v := k.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Gain{}, fmt.Errorf("%w: non-finite gain", ErrNoConvergence)
			}
			g[i][j] = v
		}
	}
	return g, nil
}
