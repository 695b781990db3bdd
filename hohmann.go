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

// HohmannSol describes a two impulse transfer between coplanar circular orbits
type HohmannSol struct {
	R1, R2       float64 // Radii of the initial and final orbits [m]
	H1, H2       float64 // Altitudes above the Earth's equatorial radius [m]
	V1, V2       float64 // Circular velocities [m/s]
	DeltaV1      float64 // First burn [m/s]
	DeltaV2      float64 // Second burn [m/s]
	DeltaV       float64 // Total |Δv| [m/s]
	SemiMajor    float64 // Transfer ellipse semi-major axis [m]
	Eccentricity float64 // Transfer ellipse eccentricity
	TransferTime float64 // Half period of the transfer ellipse [s]
}

// CalcHohmann computes the Hohmann transfer from r1 to r2 around a body of gravitational parameter mu.
// Burns are signed: negative values lower the orbit.
func CalcHohmann(r1, r2, mu float64) (*HohmannSol, error) {
	if !(r1 > 0) || !(r2 > 0) || !(mu > 0) || math.IsInf(r1+r2+mu, 0) {
		return nil, fmt.Errorf("%w: radii and gravitational parameter must be positive (r1=%g, r2=%g, mu=%g)", ErrDomain, r1, r2, mu)
	}
	a := 0.5 * (r1 + r2)
	v1 := math.Sqrt(mu / r1)
	v2 := math.Sqrt(mu / r2)
	dv1 := v1 * (math.Sqrt(2.0*r2/(r1+r2)) - 1.0)
	dv2 := v2 * (1.0 - math.Sqrt(2.0*r1/(r1+r2)))
	return &HohmannSol{
		R1:           r1,
		R2:           r2,
		H1:           r1 - Re,
		H2:           r2 - Re,
		V1:           v1,
		V2:           v2,
		DeltaV1:      dv1,
		DeltaV2:      dv2,
		DeltaV:       math.Abs(dv1) + math.Abs(dv2),
		SemiMajor:    a,
		Eccentricity: math.Abs(r2-r1) / (r1 + r2),
		TransferTime: PI * math.Sqrt(a*a*a/mu),
	}, nil
}
