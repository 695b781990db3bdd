// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

// Implements the normal shock relations and the pitot / critical Mach number inversions.

package aerocalc

import (
	"fmt"
	"math"
)

// NormalShockSol contains the jump conditions across a normal shock
type NormalShockSol struct {
	Mach1              float64 // Upstream Mach number
	Mach2              float64 // Downstream Mach number
	PressureRatio      float64 // p2/p1
	TemperatureRatio   float64 // T2/T1
	DensityRatio       float64 // ρ2/ρ1
	TotalPressureRatio float64 // p02/p01
	PitotRatio         float64 // p02/p1 (Rayleigh-Pitot)
	Entropy            float64 // Entropy rise Δs/R = -ln(p02/p01), never negative
	Gamma              float64 // Specific heat ratio
}

// CalcNormalShock computes the jump conditions for mach1 > 1
func CalcNormalShock(mach1, gamma float64) (*NormalShockSol, error) {
	if err := checkGamma(gamma); err != nil {
		return nil, err
	}
	if !(mach1 > 1) || math.IsInf(mach1, 0) {
		return nil, fmt.Errorf("%w: upstream mach number must be greater than 1 (M1=%g)", ErrDomain, mach1)
	}
	lpt := LogTotalPressureRatio(mach1, gamma)
	return &NormalShockSol{
		Mach1:              mach1,
		Mach2:              ShockMach2(mach1, gamma),
		PressureRatio:      ShockPressureRatio(mach1, gamma),
		TemperatureRatio:   ShockTemperatureRatio(mach1, gamma),
		DensityRatio:       ShockDensityRatio(mach1, gamma),
		TotalPressureRatio: math.Exp(lpt),
		PitotRatio:         RayleighPitot(mach1, gamma),
		Entropy:            -lpt,
		Gamma:              gamma,
	}, nil
}

// ShockMach2 returns the downstream Mach number
func ShockMach2(m1, gamma float64) float64 {
	m1s := m1 * m1
	return math.Sqrt((1.0 + 0.5*(gamma-1.0)*m1s) / (gamma*m1s - 0.5*(gamma-1.0)))
}

// ShockPressureRatio returns p2/p1
func ShockPressureRatio(m1, gamma float64) float64 {
	return 1.0 + 2.0*gamma/(gamma+1.0)*(m1*m1-1.0)
}

// ShockDensityRatio returns ρ2/ρ1
func ShockDensityRatio(m1, gamma float64) float64 {
	m1s := m1 * m1
	return (gamma + 1.0) * m1s / ((gamma-1.0)*m1s + 2.0)
}

// ShockTemperatureRatio returns T2/T1
func ShockTemperatureRatio(m1, gamma float64) float64 {
	return ShockPressureRatio(m1, gamma) / ShockDensityRatio(m1, gamma)
}

// TotalPressureRatio returns p02/p01
func TotalPressureRatio(m1, gamma float64) float64 {
	return math.Exp(LogTotalPressureRatio(m1, gamma))
}

// LogTotalPressureRatio returns ln(p02/p01).
// Both factors of p02/p01 are raised to powers of order 1/(γ-1), so they are combined in log space
// to stay finite when γ approaches 1.
func LogTotalPressureRatio(m1, gamma float64) float64 {
	m1s := m1 * m1
	a := math.Log(ShockDensityRatio(m1, gamma))
	b := math.Log((gamma + 1.0) / (2.0*gamma*m1s - (gamma - 1.0)))
	return (gamma*a + b) / (gamma - 1.0)
}

// RayleighPitot returns p02/p1 for a supersonic free stream
func RayleighPitot(m1, gamma float64) float64 {
	m1s := m1 * m1
	a := (gamma + 1.0) * (gamma + 1.0) * m1s / (4.0*gamma*m1s - 2.0*(gamma-1.0))
	b := (1.0 - gamma + 2.0*gamma*m1s) / (gamma + 1.0)
	return math.Pow(a, gamma/(gamma-1.0)) * b
}

// DRayleighPitot returns d(p02/p1)/dM1
func DRayleighPitot(m1, gamma float64) float64 {
	m1s := m1 * m1
	e := gamma / (gamma - 1.0)
	den := 4.0*gamma*m1s - 2.0*(gamma-1.0)
	a := (gamma + 1.0) * (gamma + 1.0) * m1s / den
	da := -4.0 * (gamma - 1.0) * (gamma + 1.0) * (gamma + 1.0) * m1 / (den * den)
	b := (1.0 - gamma + 2.0*gamma*m1s) / (gamma + 1.0)
	db := 4.0 * gamma * m1 / (gamma + 1.0)
	return e*math.Pow(a, e-1.0)*da*b + math.Pow(a, e)*db
}

// CalcFromPitotRatio recovers the normal shock from the Rayleigh-Pitot ratio p02/p1.
// If the iteration does not converge the shock at the last iterate is returned together
// with ErrNotConverged.
func CalcFromPitotRatio(ratio, gamma float64) (*NormalShockSol, error) {
	if err := checkGamma(gamma); err != nil {
		return nil, err
	}
	if !(ratio > 1) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("%w: pitot ratio must be greater than 1 (p02/p1=%g)", ErrDomain, ratio)
	}
	sonic := RayleighPitot(1, gamma)
	if ratio <= sonic {
		return nil, fmt.Errorf("%w: pitot ratio %g is not above the sonic value %.6f, the free stream is subsonic", ErrDomain, ratio, sonic)
	}

	opt := NewNewtonOpt("CalcFromPitotRatio")
	opt.Tol = PITOT_TOL
	opt.Clamp = func(m, _ float64) float64 {
		if m <= 1 {
			return 1.01
		}
		return m
	}
	sol := Newton(
		func(m float64) float64 { return RayleighPitot(m, gamma) - ratio },
		func(m float64) float64 { return DRayleighPitot(m, gamma) },
		2.0, opt)

	ns, err := CalcNormalShock(sol.X, gamma)
	if err != nil {
		return nil, err
	}
	return ns, sol.Err(opt.Label)
}

// CalcFromPressureRatio recovers the normal shock from the static pressure jump p2/p1 > 1
func CalcFromPressureRatio(ratio, gamma float64) (*NormalShockSol, error) {
	if err := checkGamma(gamma); err != nil {
		return nil, err
	}
	if !(ratio > 1) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("%w: static pressure ratio must be greater than 1 (p2/p1=%g)", ErrDomain, ratio)
	}
	m1 := math.Sqrt((gamma+1.0)/(2.0*gamma)*(ratio-1.0) + 1.0)
	return CalcNormalShock(m1, gamma)
}

// FindCriticalMach returns the upstream Mach number at which the normal shock destroys
// 99% of the stagnation pressure (p02/p01 = 0.01).
// Gases with a large gamma never lose that much below M1=100 and are rejected with ErrDomain.
func FindCriticalMach(gamma float64) (float64, error) {
	if err := checkGamma(gamma); err != nil {
		return math.NaN(), err
	}
	// p02/p01 decreases monotonically from 1 at M1=1
	f := func(m float64) float64 {
		return TotalPressureRatio(m, gamma) - CRIT_PT_RATIO
	}
	if f(CRIT_MACH_MAX) > 0 {
		return math.NaN(), fmt.Errorf("%w: p02/p01 stays above %g up to M1=%g (gamma=%g)", ErrDomain, CRIT_PT_RATIO, CRIT_MACH_MAX, gamma)
	}
	m, err := Bisect(f, 1.0, CRIT_MACH_MAX, CRIT_MACH_TOL)
	if err != nil {
		return math.NaN(), fmt.Errorf("critical mach search failed (gamma=%g): %w", gamma, err)
	}
	PrintD(2, "\tcritical mach (gamma=%g) = %.6f\n", gamma, m)
	return m, nil
}
