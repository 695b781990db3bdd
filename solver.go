// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

// Scalar root finding and maximisation kernels shared by the flow solvers.

package aerocalc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// NewtonOpt contains options of the Newton-Raphson iteration
type NewtonOpt struct {
	Tol     float64                       // Convergence threshold on |f(x)| and on the step relative to |x|
	MaxIter int                           // Maximum number of iterations
	MaxStep float64                       // Maximum absolute step. 0 means no limit
	Damping float64                       // Step multiplier. 1 gives the plain Newton step
	Clamp   func(x, prev float64) float64 // Pulls an iterate back into the valid domain (optional)
	Label   string                        // Name shown in the debug trace
}

// NewNewtonOpt creates a new NewtonOpt with default values
func NewNewtonOpt(label string) *NewtonOpt {
	return &NewtonOpt{
		Tol:     ISEN_TOL,
		MaxIter: MAX_ITER,
		MaxStep: 0,
		Damping: 1,
		Label:   label,
	}
}

// RootSol is the outcome of an iterative root search.
// X holds the last iterate even when Converged is false.
type RootSol struct {
	X         float64
	Iter      int
	Converged bool
}

// Err returns nil for a converged solution, otherwise an error wrapping ErrNotConverged
func (s RootSol) Err(label string) error {
	if s.Converged {
		return nil
	}
	return fmt.Errorf("%w: %s stopped at x=%g after %d iterations", ErrNotConverged, label, s.X, s.Iter)
}

// Newton solves f(x) = 0 starting from x0 with the derivative df
func Newton(f, df func(x float64) float64, x0 float64, opt *NewtonOpt) RootSol {
	x := x0
	for i := 0; i < opt.MaxIter; i++ {
		fx := f(x)
		if math.IsNaN(fx) {
			return RootSol{X: x, Iter: i, Converged: false}
		}
		if math.Abs(fx) < opt.Tol {
			PrintD(3, "\t%s: converged x=%.12g iter=%d\n", opt.Label, x, i)
			return RootSol{X: x, Iter: i, Converged: true}
		}
		d := df(x)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			PrintD(3, "\t%s: singular derivative at x=%.12g\n", opt.Label, x)
			return RootSol{X: x, Iter: i, Converged: false}
		}
		dx := opt.Damping * fx / d
		if opt.MaxStep > 0 && math.Abs(dx) > opt.MaxStep {
			dx = math.Copysign(opt.MaxStep, dx)
		}
		xn := x - dx
		if opt.Clamp != nil {
			xn = opt.Clamp(xn, x)
		}
		PrintD(4, "\t%s: iter=%3d x=%.12g f=%.3e dx=%.3e\n", opt.Label, i, x, fx, dx)
		if math.IsNaN(xn) {
			return RootSol{X: x, Iter: i + 1, Converged: false}
		}
		if math.Abs(xn-x) < opt.Tol*math.Abs(xn) {
			PrintD(3, "\t%s: converged x=%.12g iter=%d\n", opt.Label, xn, i+1)
			return RootSol{X: xn, Iter: i + 1, Converged: true}
		}
		x = xn
	}
	PrintD(2, "\t%s: no convergence after %d iterations (x=%.12g)\n", opt.Label, opt.MaxIter, x)
	return RootSol{X: x, Iter: opt.MaxIter, Converged: false}
}

// Bisect finds the root of f inside [a, b] until the bracket is narrower than tol.
// f(a) and f(b) must have opposite signs.
func Bisect(f func(x float64) float64, a, b, tol float64) (float64, error) {
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if math.IsNaN(fa) || math.IsNaN(fb) || math.Signbit(fa) == math.Signbit(fb) {
		return math.NaN(), fmt.Errorf("%w: root not bracketed in [%g, %g] (f=%g, %g)", ErrNotConverged, a, b, fa, fb)
	}
	for i := 0; b-a > tol && i < 200; i++ {
		m := 0.5 * (a + b)
		fm := f(m)
		if fm == 0 {
			return m, nil
		}
		if math.Signbit(fm) == math.Signbit(fa) {
			a, fa = m, fm
		} else {
			b = m
		}
	}
	return 0.5 * (a + b), nil
}

// golden ratio conjugate (sqrt(5)-1)/2
const invPhi = 0.6180339887498949

// GoldenMax maximises a unimodal f inside [a, b] by golden-section search
func GoldenMax(f func(x float64) float64, a, b, tol float64) (x, fx float64) {
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc, fd := f(c), f(d)
	for i := 0; math.Abs(b-a) > tol && i < 200; i++ {
		if fc > fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = f(d)
		}
	}
	if fc > fd {
		return c, fc
	}
	return d, fd
}

// ScanMax evaluates f on n equal cells of [a, b] and returns the best grid point.
// NaN values are ignored. i is the index of the best point (-1 if every value is NaN).
func ScanMax(f func(x float64) float64, a, b float64, n int) (x, fx float64, i int) {
	grid := floats.Span(make([]float64, n+1), a, b)
	fx, i = math.Inf(-1), -1
	for k, v := range grid {
		y := f(v)
		if math.IsNaN(y) {
			continue
		}
		if y > fx {
			x, fx, i = v, y, k
		}
	}
	return x, fx, i
}
