// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

// Implements the attached oblique shock solution of the θ-β-M relation.

package aerocalc

import (
	"fmt"
	"math"
)

// Branch selects one of the two wave angles satisfying the θ-β-M relation
type Branch int

const (
	Weak   Branch = iota // Smaller wave angle, usually supersonic downstream
	Strong               // Larger wave angle, subsonic downstream
)

// Deflection holds the maximum deflection of an attached shock [deg]
type Deflection struct {
	MaxTheta       float64 // θmax
	BetaAtMaxTheta float64 // β where θmax occurs
}

// ObliqueShockSol contains the flow across an attached oblique shock.
// Angles are in degrees.
type ObliqueShockSol struct {
	UpstreamMach            float64 // M1
	DownstreamMach          float64 // M2
	WaveAngle               float64 // β
	DeflectionAngle         float64 // θ
	PressureRatio           float64 // p2/p1
	TemperatureRatio        float64 // T2/T1
	DensityRatio            float64 // ρ2/ρ1
	StagnationPressureRatio float64 // p02/p01
	MachAngle               float64 // μ
	MaxDeflectionAngle      float64 // θmax
	NormalMach1             float64 // M1 sin β
	NormalMach2             float64 // M2 sin(β-θ)
	Branch                  Branch  // Requested branch
	Gamma                   float64 // Specific heat ratio
}

// ThetaBetaM returns the deflection θ produced by a shock of wave angle beta [rad]
func ThetaBetaM(beta, m1, gamma float64) float64 {
	sb := math.Sin(beta)
	num := 2.0 * (m1*m1*sb*sb - 1.0) / math.Tan(beta)
	den := m1*m1*(gamma+math.Cos(2.0*beta)) + 2.0
	return math.Atan(num / den)
}

// DThetaDBeta returns dθ/dβ of the θ-β-M relation
func DThetaDBeta(beta, m1, gamma float64) float64 {
	sb, cb := math.Sin(beta), math.Cos(beta)
	m1s := m1 * m1
	n := 2.0 * (m1s*sb*sb - 1.0) * cb / sb
	dn := -2.0*(m1s*sb*sb-1.0)/(sb*sb) + 4.0*m1s*cb*cb
	d := m1s*(gamma+math.Cos(2.0*beta)) + 2.0
	dd := -2.0 * m1s * math.Sin(2.0*beta)
	return (dn*d - n*dd) / (d*d + n*n)
}

// MaxDeflection finds θmax and the wave angle where it occurs.
// A grid scan over (μ, 90°) locates the cell of the maximum, which is then refined by golden-section search.
func MaxDeflection(m1, gamma float64) (*Deflection, error) {
	if err := checkGamma(gamma); err != nil {
		return nil, err
	}
	if !(m1 > 1) || math.IsInf(m1, 0) {
		return nil, fmt.Errorf("%w: upstream mach number must be greater than 1 (M1=%g)", ErrDomain, m1)
	}
	return maxDeflection(m1, gamma), nil
}

func maxDeflection(m1, gamma float64) *Deflection {
	mu := math.Asin(1.0 / m1)
	f := func(b float64) float64 { return ThetaBetaM(b, m1, gamma) }

	h := (0.5*PI - mu) / SCAN_STEPS
	b, _, i := ScanMax(f, mu, 0.5*PI, SCAN_STEPS)
	lo := math.Max(mu, b-h)
	hi := math.Min(0.5*PI, b+h)
	if i >= 0 {
		b, _ = GoldenMax(f, lo, hi, GOLDEN_TOL)
	}
	th := f(b)
	PrintD(3, "\tmax deflection (M1=%g, gamma=%g): theta=%.8f beta=%.8f\n", m1, gamma, ToDeg(th), ToDeg(b))
	return &Deflection{
		MaxTheta:       ToDeg(th),
		BetaAtMaxTheta: ToDeg(b),
	}
}

// CalcObliqueShock solves the attached oblique shock for a wedge deflection thetaDeg [deg]
func CalcObliqueShock(m1, thetaDeg, gamma float64, branch Branch) (*ObliqueShockSol, error) {
	if err := checkGamma(gamma); err != nil {
		return nil, err
	}
	if !(m1 > 1) || math.IsInf(m1, 0) {
		return nil, fmt.Errorf("%w: upstream mach number must be greater than 1 (M1=%g)", ErrDomain, m1)
	}
	if math.IsNaN(thetaDeg) || thetaDeg < -THETA_TOL {
		return nil, fmt.Errorf("%w: deflection angle must be non-negative (theta=%g deg)", ErrDomain, thetaDeg)
	}
	if branch != Weak && branch != Strong {
		return nil, fmt.Errorf("%w: unknown branch %d", ErrDomain, branch)
	}
	thetaDeg = math.Max(thetaDeg, 0)

	mu := math.Asin(1.0 / m1)
	defl := maxDeflection(m1, gamma)
	if thetaDeg > defl.MaxTheta+THETA_TOL {
		return nil, fmt.Errorf("%w: deflection %.4f deg exceeds the maximum %.4f deg for M1=%g", ErrDetached, thetaDeg, defl.MaxTheta, m1)
	}

	// Mach wave
	if thetaDeg <= THETA_TOL {
		return &ObliqueShockSol{
			UpstreamMach:            m1,
			DownstreamMach:          m1,
			WaveAngle:               ToDeg(mu),
			DeflectionAngle:         0,
			PressureRatio:           1,
			TemperatureRatio:        1,
			DensityRatio:            1,
			StagnationPressureRatio: 1,
			MachAngle:               ToDeg(mu),
			MaxDeflectionAngle:      defl.MaxTheta,
			NormalMach1:             1,
			NormalMach2:             1,
			Branch:                  branch,
			Gamma:                   gamma,
		}, nil
	}

	var beta float64
	theta := ToRad(thetaDeg)
	if thetaDeg >= defl.MaxTheta-THETA_TOL {
		// Both roots merge at θmax
		beta = ToRad(defl.BetaAtMaxTheta)
		theta = ToRad(defl.MaxTheta)
	} else {
		var err error
		beta, err = solveWaveAngle(m1, theta, gamma, mu, ToRad(defl.BetaAtMaxTheta), branch)
		if err != nil {
			if defl.MaxTheta-thetaDeg < 0.01*defl.MaxTheta {
				return nil, fmt.Errorf("wave angle not found near the maximum deflection (theta=%.4f deg, max=%.4f deg): %w", thetaDeg, defl.MaxTheta, err)
			}
			return nil, fmt.Errorf("wave angle not found (M1=%g, theta=%.4f deg, %s): %w", m1, thetaDeg, branch, err)
		}
	}

	return obliqueProps(m1, theta, beta, gamma, mu, defl, branch)
}

// solveWaveAngle solves θ(β) = theta on the requested branch.
// Starting points are tried in order and a root is accepted only inside the branch bracket;
// bisection on the bracket is the last resort.
func solveWaveAngle(m1, theta, gamma, mu, betaMax float64, branch Branch) (float64, error) {
	lo, hi := mu, betaMax
	if branch == Strong {
		lo, hi = betaMax, 0.5*PI
	}
	weakGuess := (mu + betaMax) / 2.1
	strongGuess := (betaMax + 0.5*PI) / 1.9
	guesses := []float64{weakGuess, strongGuess, 0.5 * (lo + hi)}
	if branch == Strong {
		guesses[0], guesses[1] = strongGuess, weakGuess
	}

	f := func(b float64) float64 { return ThetaBetaM(b, m1, gamma) - theta }
	df := func(b float64) float64 { return DThetaDBeta(b, m1, gamma) }

	opt := NewNewtonOpt("solveWaveAngle")
	opt.Tol = OBLIQUE_TOL
	opt.MaxStep = ToRad(OBLIQUE_MAX_STEP)
	opt.Damping = OBLIQUE_DAMPING
	opt.Clamp = func(b, prev float64) float64 {
		if b >= 0.5*PI {
			return 0.5 * (prev + 0.5*PI)
		}
		if b <= 0 {
			return 0.5 * prev
		}
		return b
	}

	const eps = 1e-9
	for k, b0 := range guesses {
		sol := Newton(f, df, b0, opt)
		if sol.Converged && sol.X >= lo-eps && sol.X <= hi+eps {
			PrintD(2, "\twave angle (%s) = %.8f deg from start #%d (%.4f deg), iter=%d\n", branch, ToDeg(sol.X), k, ToDeg(b0), sol.Iter)
			return sol.X, nil
		}
		PrintD(2, "\tstart #%d (%.4f deg) rejected: converged=%v beta=%.6f deg\n", k, ToDeg(b0), sol.Converged, ToDeg(sol.X))
	}

	b, err := Bisect(f, lo, hi, 1e-12)
	if err != nil {
		return math.NaN(), err
	}
	PrintD(2, "\twave angle (%s) = %.8f deg by bisection\n", branch, ToDeg(b))
	return b, nil
}

// obliqueProps applies the normal shock relations to the normal component of M1
func obliqueProps(m1, theta, beta, gamma, mu float64, defl *Deflection, branch Branch) (*ObliqueShockSol, error) {
	m1n := m1 * math.Sin(beta)
	m2n := ShockMach2(m1n, gamma)
	den := math.Sin(beta - theta)
	if den < 1e-10 {
		return nil, fmt.Errorf("%w: wave angle %.6f deg collapses onto the deflection %.6f deg", ErrNotConverged, ToDeg(beta), ToDeg(theta))
	}
	m2 := m2n / den
	if math.IsNaN(m2) || math.IsInf(m2, 0) || m2 < 0 || m2 > MAX_DOWNSTREAM_M1*m1 {
		return nil, fmt.Errorf("%w: unphysical downstream mach number %g (beta=%.6f deg)", ErrNotConverged, m2, ToDeg(beta))
	}
	return &ObliqueShockSol{
		UpstreamMach:            m1,
		DownstreamMach:          m2,
		WaveAngle:               ToDeg(beta),
		DeflectionAngle:         ToDeg(theta),
		PressureRatio:           ShockPressureRatio(m1n, gamma),
		TemperatureRatio:        ShockTemperatureRatio(m1n, gamma),
		DensityRatio:            ShockDensityRatio(m1n, gamma),
		StagnationPressureRatio: TotalPressureRatio(m1n, gamma),
		MachAngle:               ToDeg(mu),
		MaxDeflectionAngle:      defl.MaxTheta,
		NormalMach1:             m1n,
		NormalMach2:             m2n,
		Branch:                  branch,
		Gamma:                   gamma,
	}, nil
}
