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

// RadarOpt contains the monostatic radar parameters
type RadarOpt struct {
	Power     float64 // Transmitted power [W]
	GainDB    float64 // Antenna gain (same antenna for Tx/Rx) [dBi]
	Frequency float64 // Carrier frequency [Hz]
	RCS       float64 // Target radar cross section [m^2]
	MinSignal float64 // Minimum detectable signal [W]
	LossDB    float64 // Two-way system and propagation losses [dB]
}

func (o *RadarOpt) check() error {
	if !(o.Power > 0) || !(o.Frequency > 0) || !(o.RCS > 0) || o.LossDB < 0 {
		return fmt.Errorf("%w: invalid radar parameters (Pt=%g f=%g rcs=%g L=%g)", ErrDomain, o.Power, o.Frequency, o.RCS, o.LossDB)
	}
	return nil
}

// Wavelength returns λ = c/f [m]
func (o *RadarOpt) Wavelength() float64 {
	return C / o.Frequency
}

// RadarReceivedPower returns the echo power [W] from a target at range r [m]:
// Pr = Pt G² λ² σ / ((4π)³ R⁴ L)
func RadarReceivedPower(opt *RadarOpt, r float64) (float64, error) {
	if err := opt.check(); err != nil {
		return math.NaN(), err
	}
	if !(r > 0) {
		return math.NaN(), fmt.Errorf("%w: range must be positive (R=%g)", ErrDomain, r)
	}
	g := math.Pow(10, opt.GainDB/10.0)
	l := math.Pow(10, opt.LossDB/10.0)
	lam := opt.Wavelength()
	return opt.Power * SQ(g*lam) * opt.RCS / (math.Pow(4*PI, 3) * math.Pow(r, 4) * l), nil
}

// RadarMaxRange returns the range [m] where the echo drops to the minimum detectable signal
func RadarMaxRange(opt *RadarOpt) (float64, error) {
	if err := opt.check(); err != nil {
		return math.NaN(), err
	}
	if !(opt.MinSignal > 0) {
		return math.NaN(), fmt.Errorf("%w: minimum detectable signal must be positive (Smin=%g)", ErrDomain, opt.MinSignal)
	}
	g := math.Pow(10, opt.GainDB/10.0)
	l := math.Pow(10, opt.LossDB/10.0)
	lam := opt.Wavelength()
	return math.Pow(opt.Power*SQ(g*lam)*opt.RCS/(math.Pow(4*PI, 3)*opt.MinSignal*l), 0.25), nil
}
