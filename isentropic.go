// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

// Implements the isentropic flow relations of a calorically perfect gas and their inverses.

package aerocalc

import (
	"fmt"
	"math"
)

// IsentropicSol contains the stagnation-to-static relations at a given Mach number
type IsentropicSol struct {
	Mach               float64 // Mach number
	Gamma              float64 // Specific heat ratio
	PressureRatio      float64 // p/p0
	TemperatureRatio   float64 // T/T0
	DensityRatio       float64 // ρ/ρ0
	AreaRatio          float64 // A/A*
	MachAngle          float64 // μ [deg], NaN when subsonic
	PrandtlMeyerAngle  float64 // ν [deg], NaN when subsonic
	PitotPressureRatio float64 // p0/p (subsonic) or p02/p1 behind a normal shock (supersonic)
}

// CalcIsentropic computes all isentropic relations for mach >= 0
func CalcIsentropic(mach, gamma float64) (*IsentropicSol, error) {
	if err := checkGamma(gamma); err != nil {
		return nil, err
	}
	if !(mach >= 0) || math.IsInf(mach, 0) {
		return nil, fmt.Errorf("%w: mach number must be non-negative (M=%g)", ErrDomain, mach)
	}
	return &IsentropicSol{
		Mach:               mach,
		Gamma:              gamma,
		PressureRatio:      PressureRatio(mach, gamma),
		TemperatureRatio:   TemperatureRatio(mach, gamma),
		DensityRatio:       DensityRatio(mach, gamma),
		AreaRatio:          AreaRatio(mach, gamma),
		MachAngle:          MachAngle(mach),
		PrandtlMeyerAngle:  PrandtlMeyer(mach, gamma),
		PitotPressureRatio: PitotRatio(mach, gamma),
	}, nil
}

// TemperatureRatio returns T/T0
func TemperatureRatio(mach, gamma float64) float64 {
	return 1.0 / (1.0 + 0.5*(gamma-1.0)*mach*mach)
}

// PressureRatio returns p/p0
func PressureRatio(mach, gamma float64) float64 {
	return math.Pow(TemperatureRatio(mach, gamma), gamma/(gamma-1.0))
}

// DensityRatio returns ρ/ρ0
func DensityRatio(mach, gamma float64) float64 {
	return math.Pow(TemperatureRatio(mach, gamma), 1.0/(gamma-1.0))
}

// AreaRatio returns A/A*. It is +Inf at M=0 and has its minimum 1 at M=1.
func AreaRatio(mach, gamma float64) float64 {
	if mach == 0 {
		return math.Inf(1)
	}
	k := 2.0 / (gamma + 1.0) * (1.0 + 0.5*(gamma-1.0)*mach*mach)
	return math.Pow(k, (gamma+1.0)/(2.0*(gamma-1.0))) / mach
}

// MachAngle returns μ = asin(1/M) [deg]
func MachAngle(mach float64) float64 {
	if mach < 1 {
		return math.NaN()
	}
	return ToDeg(math.Asin(1.0 / mach))
}

// PrandtlMeyer returns the Prandtl-Meyer function ν(M) [deg]
func PrandtlMeyer(mach, gamma float64) float64 {
	if mach < 1 {
		return math.NaN()
	}
	a := math.Sqrt((gamma + 1.0) / (gamma - 1.0))
	b := math.Sqrt(mach*mach - 1.0)
	return ToDeg(a*math.Atan(b/a) - math.Atan(b))
}

// PrandtlMeyerMax returns ν for M -> ∞ [deg]
func PrandtlMeyerMax(gamma float64) float64 {
	return ToDeg(0.5 * PI * (math.Sqrt((gamma+1.0)/(gamma-1.0)) - 1.0))
}

// PitotRatio returns the ratio a pitot tube reads against the free stream static pressure
func PitotRatio(mach, gamma float64) float64 {
	if mach <= 1 {
		return 1.0 / PressureRatio(mach, gamma)
	}
	return RayleighPitot(mach, gamma)
}

// DPressureRatio returns d(p/p0)/dM
func DPressureRatio(mach, gamma float64) float64 {
	t := TemperatureRatio(mach, gamma)
	return -gamma * mach * math.Pow(t, gamma/(gamma-1.0)+1.0)
}

// DAreaRatio returns d(A/A*)/dM = A/A* (M²-1) / (M (1 + (γ-1)/2 M²))
func DAreaRatio(mach, gamma float64) float64 {
	return AreaRatio(mach, gamma) * (mach*mach - 1.0) * TemperatureRatio(mach, gamma) / mach
}

// DPrandtlMeyer returns dν/dM [rad]
func DPrandtlMeyer(mach, gamma float64) float64 {
	return math.Sqrt(mach*mach-1.0) * TemperatureRatio(mach, gamma) / mach
}

//-------------------------------------------------------------------
// Inverse relations
//-------------------------------------------------------------------

// MachFromPressureRatio recovers M from p/p0 in (0, 1].
// If the iteration does not converge the last iterate is returned together with ErrNotConverged.
func MachFromPressureRatio(ratio, gamma float64) (float64, error) {
	if err := checkGamma(gamma); err != nil {
		return math.NaN(), err
	}
	if !(ratio > 0 && ratio <= 1) {
		return math.NaN(), fmt.Errorf("%w: pressure ratio must be in (0, 1] (p/p0=%g)", ErrDomain, ratio)
	}
	if ratio == 1 {
		return 0, nil
	}

	// Analytic initial guess
	m0 := math.Sqrt(2.0 / (gamma - 1.0) * (math.Pow(ratio, -(gamma-1.0)/gamma) - 1.0))

	opt := NewNewtonOpt("MachFromPressureRatio")
	opt.Clamp = func(m, _ float64) float64 {
		if m <= 0 {
			return 0.01
		}
		return m
	}
	sol := Newton(
		func(m float64) float64 { return PressureRatio(m, gamma) - ratio },
		func(m float64) float64 { return DPressureRatio(m, gamma) },
		m0, opt)
	return sol.X, sol.Err(opt.Label)
}

// MachFromAreaRatio recovers M from A/A* >= 1 on the requested branch.
// If the iteration does not converge the last iterate is returned together with ErrNotConverged.
func MachFromAreaRatio(ratio, gamma float64, supersonic bool) (float64, error) {
	if err := checkGamma(gamma); err != nil {
		return math.NaN(), err
	}
	if !(ratio >= 1) || math.IsInf(ratio, 0) {
		return math.NaN(), fmt.Errorf("%w: area ratio must be >= 1 (A/A*=%g)", ErrDomain, ratio)
	}
	if ratio == 1 {
		return 1, nil
	}

	m0 := 0.5
	if supersonic {
		m0 = 2.0
	}

	opt := NewNewtonOpt("MachFromAreaRatio")
	opt.Clamp = func(m, prev float64) float64 {
		// Keep the iterate inside the requested regime
		if supersonic && m <= 1 {
			return 1.0 + 0.5*(prev-1.0)
		}
		if !supersonic && m >= 1 {
			return 0.5 * (prev + 1.0)
		}
		if !supersonic && m <= 0 {
			return 0.5 * prev
		}
		return m
	}
	sol := Newton(
		func(m float64) float64 { return AreaRatio(m, gamma) - ratio },
		func(m float64) float64 { return DAreaRatio(m, gamma) },
		m0, opt)
	return sol.X, sol.Err(opt.Label)
}

// MachFromTemperatureRatio recovers M from T/T0 in (0, 1]
func MachFromTemperatureRatio(ratio, gamma float64) (float64, error) {
	if err := checkGamma(gamma); err != nil {
		return math.NaN(), err
	}
	if !(ratio > 0 && ratio <= 1) {
		return math.NaN(), fmt.Errorf("%w: temperature ratio must be in (0, 1] (T/T0=%g)", ErrDomain, ratio)
	}
	return math.Sqrt(2.0 * (1.0 - ratio) / ((gamma - 1.0) * ratio)), nil
}

// MachFromDensityRatio recovers M from ρ/ρ0 in (0, 1]
func MachFromDensityRatio(ratio, gamma float64) (float64, error) {
	if err := checkGamma(gamma); err != nil {
		return math.NaN(), err
	}
	if !(ratio > 0 && ratio <= 1) {
		return math.NaN(), fmt.Errorf("%w: density ratio must be in (0, 1] (ρ/ρ0=%g)", ErrDomain, ratio)
	}
	return MachFromTemperatureRatio(math.Pow(ratio, gamma-1.0), gamma)
}

// MachFromPrandtlMeyer recovers the supersonic M from ν [deg].
// If the iteration does not converge the last iterate is returned together with ErrNotConverged.
func MachFromPrandtlMeyer(nu, gamma float64) (float64, error) {
	if err := checkGamma(gamma); err != nil {
		return math.NaN(), err
	}
	numax := PrandtlMeyerMax(gamma)
	if !(nu >= 0 && nu < numax) {
		return math.NaN(), fmt.Errorf("%w: Prandtl-Meyer angle must be in [0, %.4f) deg (nu=%g)", ErrDomain, numax, nu)
	}
	if nu == 0 {
		return 1, nil
	}
	target := ToRad(nu)

	// Hall's approximation of the inverse is a good starting point over the whole range
	y := math.Pow(target/ToRad(numax), 2.0/3.0)
	m0 := (1.0 + 1.3604*y + 0.0962*y*y - 0.5127*y*y*y) / (1.0 - 0.6722*y - 0.3278*y*y)
	if !(m0 > 1) || math.IsInf(m0, 0) {
		m0 = 2.0
	}

	opt := NewNewtonOpt("MachFromPrandtlMeyer")
	opt.Clamp = func(m, prev float64) float64 {
		if m <= 1 {
			return 1.0 + 0.5*(prev-1.0)
		}
		return m
	}
	sol := Newton(
		func(m float64) float64 { return ToRad(PrandtlMeyer(m, gamma)) - target },
		func(m float64) float64 { return DPrandtlMeyer(m, gamma) },
		m0, opt)
	return sol.X, sol.Err(opt.Label)
}
