// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

// Sphere drag correlations and finite wing lift/drag.

package aerocalc

import (
	"fmt"
	"math"
)

// Reynolds returns ρ v L / μ
func Reynolds(rho, v, length, viscosity float64) float64 {
	return rho * v * length / viscosity
}

// Flow regimes of the sphere drag correlation
const (
	RE_STOKES = 1.0    // Upper limit of Stokes flow
	RE_NEWTON = 1000.0 // Start of the Newton plateau
	RE_CRISIS = 3.0e5  // Drag crisis
)

// SphereDragCoefficient returns the drag coefficient of a smooth sphere
//   - Re < 1       : Stokes, 24/Re
//   - Re < 1000    : Schiller-Naumann, 24/Re (1 + 0.15 Re^0.687)
//   - Re < 3e5     : Newton plateau, 0.44
//   - Re >= 3e5    : post crisis, 0.1 rising slowly with Re
func SphereDragCoefficient(re float64) float64 {
	switch {
	case re <= 0:
		return math.NaN()
	case re < RE_STOKES:
		return 24.0 / re
	case re < RE_NEWTON:
		return 24.0 / re * (1.0 + 0.15*math.Pow(re, 0.687))
	case re < RE_CRISIS:
		return 0.44
	default:
		return math.Min(0.2, 0.1*math.Pow(re/RE_CRISIS, 0.2))
	}
}

// SphereDragSol contains the drag on a sphere in uniform flow
type SphereDragSol struct {
	Reynolds float64
	Cd       float64
	Area     float64 // Frontal area [m^2]
	Dynamic  float64 // Dynamic pressure [Pa]
	Force    float64 // Drag force [N]
	Regime   string
}

// CalcSphereDrag computes the drag of a sphere of diameter d [m]
func CalcSphereDrag(rho, v, d, viscosity float64) (*SphereDragSol, error) {
	if !(rho > 0) || !(v > 0) || !(d > 0) || !(viscosity > 0) {
		return nil, fmt.Errorf("%w: density, speed, diameter and viscosity must be positive", ErrDomain)
	}
	re := Reynolds(rho, v, d, viscosity)
	cd := SphereDragCoefficient(re)
	area := 0.25 * PI * d * d
	q := 0.5 * rho * v * v
	regime := "stokes"
	switch {
	case re >= RE_CRISIS:
		regime = "supercritical"
	case re >= RE_NEWTON:
		regime = "newton"
	case re >= RE_STOKES:
		regime = "intermediate"
	}
	return &SphereDragSol{
		Reynolds: re,
		Cd:       cd,
		Area:     area,
		Dynamic:  q,
		Force:    q * area * cd,
		Regime:   regime,
	}, nil
}

// LiftDragSol contains the aerodynamic forces on a finite wing
type LiftDragSol struct {
	Dynamic float64 // Dynamic pressure [Pa]
	Cl      float64 // Lift coefficient
	Cdi     float64 // Induced drag coefficient
	Cd      float64 // Total drag coefficient
	Lift    float64 // [N]
	Drag    float64 // [N]
	LD      float64 // Lift to drag ratio
}

// CalcLiftDrag uses the parabolic drag polar Cd = Cd0 + Cl²/(π e AR)
func CalcLiftDrag(rho, v, area, cl, cd0, ar, e float64) (*LiftDragSol, error) {
	if !(rho > 0) || !(v >= 0) || !(area > 0) || !(ar > 0) || !(e > 0 && e <= 1) || cd0 < 0 {
		return nil, fmt.Errorf("%w: invalid wing parameters (rho=%g v=%g S=%g AR=%g e=%g Cd0=%g)", ErrDomain, rho, v, area, ar, e, cd0)
	}
	q := 0.5 * rho * v * v
	cdi := cl * cl / (PI * e * ar)
	cd := cd0 + cdi
	sol := &LiftDragSol{
		Dynamic: q,
		Cl:      cl,
		Cdi:     cdi,
		Cd:      cd,
		Lift:    q * area * cl,
		Drag:    q * area * cd,
		LD:      math.NaN(),
	}
	if cd > 0 {
		sol.LD = cl / cd
	}
	return sol, nil
}

// MaxLiftToDrag returns (L/D)max and the lift coefficient where it occurs for the parabolic polar
func MaxLiftToDrag(cd0, ar, e float64) (ld, cl float64) {
	k := 1.0 / (PI * e * ar)
	cl = math.Sqrt(cd0 / k)
	return 0.5 / math.Sqrt(cd0*k), cl
}
