// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

// Weighted least squares and its use for fitting a parabolic drag polar to measured points.

package aerocalc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SolveLS solves the overdetermined system G x = y by weighted least squares
//   - x = (G^t W G)^-1 G^t W y
//   - W is diagonal, given by its elements w
//   - cov is (G^t W G)^-1
func SolveLS(G mat.Matrix, y mat.Vector, w []float64) (x *mat.VecDense, cov *mat.SymDense, err error) {

	n, m := G.Dims()
	if y.Len() != n || len(w) != n {
		return nil, nil, fmt.Errorf("%w: invalid sizes. G(%d x %d), y(%d), w(%d)", ErrDomain, n, m, y.Len(), len(w))
	}
	if n < m {
		return nil, nil, fmt.Errorf("%w: %d equations for %d unknowns", ErrDomain, n, m)
	}

	// Row scaling by sqrt(w) turns the weighted problem into an ordinary one
	sq := make([]float64, n)
	for i, v := range w {
		if !(v >= 0) {
			return nil, nil, fmt.Errorf("%w: negative weight %g at row %d", ErrDomain, v, i)
		}
		sq[i] = math.Sqrt(v)
	}
	sw := mat.NewDiagDense(n, sq)
	var WG mat.Dense
	WG.Mul(sw, G)
	var wy mat.VecDense
	wy.MulVec(sw, y)

	// A = G^t W G
	A := mat.NewSymDense(m, nil)
	A.SymOuterK(1, WG.T())

	// b = G^t W y
	var b mat.VecDense
	b.MulVec(WG.T(), &wy)

	var chol mat.Cholesky
	if ok := chol.Factorize(A); !ok {
		return nil, nil, fmt.Errorf("%w: normal matrix is not positive definite", ErrDomain)
	}
	x = mat.NewVecDense(m, nil)
	if err = chol.SolveVecTo(x, &b); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	cov = mat.NewSymDense(m, nil)
	if err = chol.InverseTo(cov); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	return x, cov, nil
}

// PolarFit is a parabolic drag polar Cd = Cd0 + K Cl² fitted to measured points
type PolarFit struct {
	Cd0      float64 // Zero lift drag coefficient
	K        float64 // Induced drag factor
	Oswald   float64 // e = 1/(π AR K), NaN if the aspect ratio is unknown
	SigmaCd0 float64 // Standard deviation of Cd0
	SigmaK   float64 // Standard deviation of K
	RMS      float64 // Weighted RMS residual of Cd
	LDMax    float64 // Best lift to drag ratio of the fitted polar
	ClLDMax  float64 // Lift coefficient at the best lift to drag ratio
}

// FitDragPolar fits Cd = Cd0 + K Cl² to the measured points (cl[i], cd[i]).
// w holds the weights of the points (nil for equal weights); ar <= 0 leaves Oswald undefined.
func FitDragPolar(cl, cd, w []float64, ar float64) (*PolarFit, error) {
	n := len(cl)
	if len(cd) != n {
		return nil, fmt.Errorf("%w: %d lift and %d drag coefficients", ErrDomain, n, len(cd))
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: at least 2 points are required (n=%d)", ErrDomain, n)
	}
	if w == nil {
		w = make([]float64, n)
		for i := range w {
			w[i] = 1
		}
	}

	G := mat.NewDense(n, 2, nil)
	spread := false
	for i, c := range cl {
		G.Set(i, 0, 1)
		G.Set(i, 1, c*c)
		spread = spread || c*c != cl[0]*cl[0]
	}
	if !spread {
		return nil, fmt.Errorf("%w: lift coefficients of the same magnitude cannot separate Cd0 from K", ErrDomain)
	}
	x, cov, err := SolveLS(G, mat.NewVecDense(n, cd), w)
	if err != nil {
		return nil, fmt.Errorf("drag polar fit failed: %w", err)
	}
	cd0, k := x.AtVec(0), x.AtVec(1)

	// Weighted residuals and the a posteriori variance factor
	var ss, sw float64
	for i := range cl {
		r := cd[i] - (cd0 + k*cl[i]*cl[i])
		ss += w[i] * r * r
		sw += w[i]
	}
	s2 := 0.0
	if n > 2 {
		s2 = ss / float64(n-2)
	}
	PrintD(2, "\tdrag polar: Cd0=%.6f K=%.6f (n=%d)\n", cd0, k, n)

	fit := &PolarFit{
		Cd0:      cd0,
		K:        k,
		Oswald:   math.NaN(),
		SigmaCd0: math.Sqrt(s2 * cov.At(0, 0)),
		SigmaK:   math.Sqrt(s2 * cov.At(1, 1)),
		RMS:      math.NaN(),
		LDMax:    math.NaN(),
		ClLDMax:  math.NaN(),
	}
	if sw > 0 {
		fit.RMS = math.Sqrt(ss / sw)
	}
	if cd0 > 0 && k > 0 {
		fit.ClLDMax = math.Sqrt(cd0 / k)
		fit.LDMax = 0.5 / math.Sqrt(cd0*k)
		if ar > 0 {
			fit.Oswald = 1 / (PI * ar * k)
		}
	}
	return fit, nil
}
