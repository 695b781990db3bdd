// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

package aerocalc

import (
	"fmt"
	"math"
)

// ImpulseSol contains the rocket engine efficiency figures
type ImpulseSol struct {
	Isp              float64 // Specific impulse [s]
	ExhaustVelocity  float64 // Effective exhaust velocity [m/s]
	Thrust           float64 // [N]
	MassFlow         float64 // [kg/s]
	TotalImpulse     float64 // Thrust times burn time [N s]
	PropellantMass   float64 // Mass flow times burn time [kg]
	ThrustToWeightSL float64 // Thrust over engine weight at sea level, NaN without engine mass
}

// CalcSpecificImpulse computes Isp = F/(ṁ g0) for a burn of burnTime [s].
// engineMass <= 0 leaves the thrust to weight ratio undefined.
func CalcSpecificImpulse(thrust, massFlow, burnTime, engineMass float64) (*ImpulseSol, error) {
	if !(thrust > 0) || !(massFlow > 0) || burnTime < 0 {
		return nil, fmt.Errorf("%w: thrust and mass flow must be positive, burn time non-negative", ErrDomain)
	}
	ve := thrust / massFlow
	sol := &ImpulseSol{
		Isp:              ve / G0,
		ExhaustVelocity:  ve,
		Thrust:           thrust,
		MassFlow:         massFlow,
		TotalImpulse:     thrust * burnTime,
		PropellantMass:   massFlow * burnTime,
		ThrustToWeightSL: math.NaN(),
	}
	if engineMass > 0 {
		sol.ThrustToWeightSL = thrust / (engineMass * G0)
	}
	return sol, nil
}

// RocketDeltaV returns the ideal velocity change Isp g0 ln(m0/mf) [m/s]
func RocketDeltaV(isp, m0, mf float64) (float64, error) {
	if !(isp > 0) || !(mf > 0) || !(m0 >= mf) {
		return math.NaN(), fmt.Errorf("%w: invalid rocket parameters (Isp=%g m0=%g mf=%g)", ErrDomain, isp, m0, mf)
	}
	return isp * G0 * math.Log(m0/mf), nil
}

// PropellantFraction returns the mass fraction 1 - mf/m0 needed for a velocity change dv [m/s]
func PropellantFraction(dv, isp float64) (float64, error) {
	if dv < 0 || !(isp > 0) {
		return math.NaN(), fmt.Errorf("%w: invalid parameters (dv=%g Isp=%g)", ErrDomain, dv, isp)
	}
	return 1 - math.Exp(-dv/(isp*G0)), nil
}
