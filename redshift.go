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

// RedshiftSol contains the Doppler interpretation of a spectral line shift
type RedshiftSol struct {
	Z                    float64 // (λobs - λemit) / λemit
	ClassicalVelocity    float64 // c z [m/s]
	RelativisticVelocity float64 // c ((1+z)²-1)/((1+z)²+1) [m/s]
	Distance             float64 // Hubble distance v/H0 from the relativistic velocity [Mpc]
	DistanceM            float64 // Same distance [m]
}

// CalcRedshift computes z from observed and emitted wavelengths (same unit) and the Hubble constant [km/s/Mpc]
func CalcRedshift(observed, emitted, hubble float64) (*RedshiftSol, error) {
	if !(observed > 0) || !(emitted > 0) || !(hubble > 0) {
		return nil, fmt.Errorf("%w: wavelengths and Hubble constant must be positive", ErrDomain)
	}
	z := (observed - emitted) / emitted
	return RedshiftFromZ(z, hubble), nil
}

// RedshiftFromZ derives the velocities and distance from a known z > -1
func RedshiftFromZ(z, hubble float64) *RedshiftSol {
	s := (1 + z) * (1 + z)
	vr := C * (s - 1) / (s + 1)
	d := vr / 1000.0 / hubble
	return &RedshiftSol{
		Z:                    z,
		ClassicalVelocity:    C * z,
		RelativisticVelocity: vr,
		Distance:             d,
		DistanceM:            d * MPC,
	}
}

// ZFromVelocity inverts the relativistic Doppler relation, |v| < c
func ZFromVelocity(v float64) (float64, error) {
	if math.Abs(v) >= C {
		return math.NaN(), fmt.Errorf("%w: velocity must be below the speed of light (v=%g)", ErrDomain, v)
	}
	b := v / C
	return math.Sqrt((1+b)/(1-b)) - 1, nil
}
