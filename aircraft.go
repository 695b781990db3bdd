// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

// Aircraft weight breakdown and Breguet range-payload model.

package aerocalc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// WeightSol is the take-off weight breakdown [kg]
type WeightSol struct {
	Empty         float64
	Payload       float64
	Fuel          float64
	TakeOff       float64
	EmptyFraction float64
	FuelFraction  float64
	PayloadRatio  float64
}

// CalcWeightBreakdown sums the weight groups and their fractions of take-off weight
func CalcWeightBreakdown(empty, payload, fuel float64) (*WeightSol, error) {
	if !(empty > 0) || payload < 0 || fuel < 0 {
		return nil, fmt.Errorf("%w: empty weight must be positive, payload and fuel non-negative", ErrDomain)
	}
	tow := empty + payload + fuel
	return &WeightSol{
		Empty:         empty,
		Payload:       payload,
		Fuel:          fuel,
		TakeOff:       tow,
		EmptyFraction: empty / tow,
		FuelFraction:  fuel / tow,
		PayloadRatio:  payload / tow,
	}, nil
}

// BreguetRange returns the jet aircraft range [m]:
// R = V/c (L/D) ln(Wi/Wf), with v [m/s] and the weight specific tsfc c [1/s]
// (fuel weight flow per unit thrust, e.g. 0.6 1/h = 1.667e-4 1/s)
func BreguetRange(v, tsfc, ld, wi, wf float64) (float64, error) {
	if !(v > 0) || !(tsfc > 0) || !(ld > 0) || !(wf > 0) || !(wi >= wf) {
		return math.NaN(), fmt.Errorf("%w: invalid Breguet parameters (V=%g c=%g L/D=%g Wi=%g Wf=%g)", ErrDomain, v, tsfc, ld, wi, wf)
	}
	return v / tsfc * ld * math.Log(wi/wf), nil
}

// RangePayloadPoint is one corner of the range-payload diagram
type RangePayloadPoint struct {
	Payload float64 // [kg]
	Fuel    float64 // [kg]
	Range   float64 // [m]
}

// RangePayloadOpt contains the aircraft data for the range-payload diagram
type RangePayloadOpt struct {
	Empty      float64 // Operating empty weight [kg]
	MaxPayload float64 // [kg]
	MaxFuel    float64 // Fuel capacity [kg]
	MTOW       float64 // Maximum take-off weight [kg]
	Speed      float64 // Cruise speed [m/s]
	TSFC       float64 // Weight specific fuel consumption [1/s]
	LD         float64 // Cruise lift to drag ratio
	Reserve    float64 // Fraction of the fuel kept as reserve
}

// RangePayload samples npts payloads from MaxPayload down to zero.
// Fuel is limited by both the tank capacity and the MTOW.
func RangePayload(opt *RangePayloadOpt, npts int) ([]RangePayloadPoint, error) {
	if npts < 2 {
		return nil, fmt.Errorf("%w: at least 2 points are required (npts=%d)", ErrDomain, npts)
	}
	if !(opt.Empty > 0) || opt.MaxPayload < 0 || !(opt.MaxFuel > 0) || !(opt.MTOW > opt.Empty) {
		return nil, fmt.Errorf("%w: invalid aircraft weights", ErrDomain)
	}
	if opt.Reserve < 0 || opt.Reserve >= 1 {
		return nil, fmt.Errorf("%w: reserve fraction must be in [0, 1) (reserve=%g)", ErrDomain, opt.Reserve)
	}
	payloads := floats.Span(make([]float64, npts), opt.MaxPayload, 0)
	pts := make([]RangePayloadPoint, 0, npts)
	for _, pl := range payloads {
		fuel := math.Min(opt.MaxFuel, opt.MTOW-opt.Empty-pl)
		if fuel <= 0 {
			pts = append(pts, RangePayloadPoint{Payload: pl})
			continue
		}
		wi := opt.Empty + pl + fuel
		wf := wi - fuel*(1.0-opt.Reserve)
		r, err := BreguetRange(opt.Speed, opt.TSFC, opt.LD, wi, wf)
		if err != nil {
			return nil, err
		}
		pts = append(pts, RangePayloadPoint{Payload: pl, Fuel: fuel, Range: r})
	}
	return pts, nil
}
