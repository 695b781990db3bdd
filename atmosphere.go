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

// Gas is a calorically perfect gas
type Gas struct {
	Name  string
	Gamma float64 // Specific heat ratio
	R     float64 // Specific gas constant [J/(kg K)]
}

// Gases holds common presets keyed by lower case name
var Gases = map[string]Gas{
	"air":      {Name: "Air", Gamma: 1.4, R: R_AIR},
	"nitrogen": {Name: "Nitrogen", Gamma: 1.4, R: 296.8},
	"oxygen":   {Name: "Oxygen", Gamma: 1.395, R: 259.8},
	"helium":   {Name: "Helium", Gamma: 1.667, R: 2077.1},
	"argon":    {Name: "Argon", Gamma: 1.667, R: 208.1},
	"hydrogen": {Name: "Hydrogen", Gamma: 1.405, R: 4124.2},
	"co2":      {Name: "Carbon dioxide", Gamma: 1.289, R: 188.9},
	"steam":    {Name: "Steam", Gamma: 1.33, R: 461.5},
}

// SpeedOfSound returns a = sqrt(γ R T) [m/s]
func SpeedOfSound(tempK, gamma, r float64) float64 {
	return math.Sqrt(gamma * r * tempK)
}

// MachNumber returns v/a for a flight speed v [m/s] at temperature tempK
func MachNumber(v, tempK, gamma, r float64) (float64, error) {
	if err := checkGamma(gamma); err != nil {
		return math.NaN(), err
	}
	if !(tempK > 0) || !(r > 0) {
		return math.NaN(), fmt.Errorf("%w: temperature and gas constant must be positive (T=%g, R=%g)", ErrDomain, tempK, r)
	}
	if v < 0 {
		return math.NaN(), fmt.Errorf("%w: speed must be non-negative (v=%g)", ErrDomain, v)
	}
	return v / SpeedOfSound(tempK, gamma, r), nil
}

// AtmosphereSol is the ISA state at a geopotential altitude
type AtmosphereSol struct {
	Altitude     float64 // [m]
	Temperature  float64 // [K]
	Pressure     float64 // [Pa]
	Density      float64 // [kg/m^3]
	SpeedOfSound float64 // [m/s]
}

// ISA layers up to 20 km
const (
	ISA_LAPSE      = -0.0065 // Troposphere lapse rate [K/m]
	ISA_TROPOPAUSE = 11000.0 // [m]
	ISA_TOP        = 20000.0 // [m]
)

// StandardAtmosphere returns the ISA troposphere / lower stratosphere state at altitude h [m]
func StandardAtmosphere(h float64) (*AtmosphereSol, error) {
	if math.IsNaN(h) || h < -1000.0 || h > ISA_TOP {
		return nil, fmt.Errorf("%w: altitude must be in [-1000, %g] m (h=%g)", ErrDomain, ISA_TOP, h)
	}
	e := G0 / (R_AIR * -ISA_LAPSE)
	var t, p float64
	if h <= ISA_TROPOPAUSE {
		t = T0_ISA + ISA_LAPSE*h
		p = P0_ISA * math.Pow(t/T0_ISA, e)
	} else {
		t11 := T0_ISA + ISA_LAPSE*ISA_TROPOPAUSE
		p11 := P0_ISA * math.Pow(t11/T0_ISA, e)
		t = t11
		p = p11 * math.Exp(-G0*(h-ISA_TROPOPAUSE)/(R_AIR*t11))
	}
	return &AtmosphereSol{
		Altitude:     h,
		Temperature:  t,
		Pressure:     p,
		Density:      p / (R_AIR * t),
		SpeedOfSound: SpeedOfSound(t, GAMMA, R_AIR),
	}, nil
}
