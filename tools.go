// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

// Registry of the calculators reachable from the command line and the HTTP server.

package aerocalc

import (
	"fmt"
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Params holds the numeric inputs of a tool by name
type Params map[string]float64

// Series holds the array inputs of a tool by name
type Series map[string][]float64

// Tool is a named calculator
type Tool struct {
	Name   string                                // Key used on the command line and in URLs
	Desc   string                                // One line description
	Params Params                                // Default values. NaN marks a required parameter
	Series map[string]bool                       // Array inputs. true marks a required one
	Calc   func(p Params, s Series) (any, error) // Calculation. p contains every parameter of Params
}

// MachSol wraps the result of the scalar Mach number inversions
type MachSol struct {
	Mach float64
}

// ValueSol wraps a single scalar result
type ValueSol struct {
	Value float64
	Unit  string
}

// tools holds all available calculators
var tools = map[string]*Tool{}

func register(t *Tool) {
	tools[t.Name] = t
}

// Tools returns the sorted names of all calculators
func Tools() []string {
	names := maps.Keys(tools)
	slices.Sort(names)
	return names
}

// Lookup returns the calculator registered under name
func Lookup(name string) (*Tool, error) {
	t, ok := tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	return t, nil
}

// ParamNames returns the sorted parameter names of the tool
func (t *Tool) ParamNames() []string {
	names := maps.Keys(t.Params)
	slices.Sort(names)
	return names
}

// Resolve merges the given values with the defaults and checks that nothing is missing or unknown
func (t *Tool) Resolve(in Params) (Params, error) {
	p := maps.Clone(t.Params)
	for k, v := range in {
		if _, ok := t.Params[k]; !ok {
			return nil, fmt.Errorf("%w: tool %q has no parameter %q (parameters: %v)", ErrDomain, t.Name, k, t.ParamNames())
		}
		p[k] = v
	}
	for _, k := range t.ParamNames() {
		if math.IsNaN(p[k]) {
			return nil, fmt.Errorf("%w: tool %q requires parameter %q", ErrDomain, t.Name, k)
		}
	}
	return p, nil
}

// SeriesNames returns the sorted array input names of the tool
func (t *Tool) SeriesNames() []string {
	names := maps.Keys(t.Series)
	slices.Sort(names)
	return names
}

// CheckSeries verifies that every required array is given and that no unknown array is
func (t *Tool) CheckSeries(s Series) error {
	for k := range s {
		if _, ok := t.Series[k]; !ok {
			return fmt.Errorf("%w: tool %q has no array input %q (arrays: %v)", ErrDomain, t.Name, k, t.SeriesNames())
		}
	}
	for _, k := range t.SeriesNames() {
		if t.Series[k] && len(s[k]) == 0 {
			return fmt.Errorf("%w: tool %q requires array %q", ErrDomain, t.Name, k)
		}
	}
	return nil
}

// Run resolves the parameters and runs the named calculator.
// s carries the array inputs and may be nil for tools without any.
// A non nil result may accompany an ErrNotConverged error.
func Run(name string, in Params, s Series) (any, error) {
	t, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	p, err := t.Resolve(in)
	if err != nil {
		return nil, err
	}
	if err = t.CheckSeries(s); err != nil {
		return nil, err
	}
	PrintD(1, "run %s %v %v\n", name, p, s)
	return t.Calc(p, s)
}

// result drops typed nil pointers so that callers can test the result against nil
func result[T any](v *T, err error) (any, error) {
	if v == nil {
		return nil, err
	}
	return v, err
}

// valueResult wraps a scalar calculation in a ValueSol
func valueResult(v float64, unit string, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return &ValueSol{Value: v, Unit: unit}, nil
}

// machResult keeps a best-effort value next to a non-convergence error
func machResult(m float64, err error) (any, error) {
	if math.IsNaN(m) {
		return nil, err
	}
	return &MachSol{Mach: m}, err
}

// RangePayloadSol is the sampled range-payload diagram
type RangePayloadSol struct {
	Points []RangePayloadPoint
}

var required = math.NaN()

// radarOpt collects the radar parameters shared by the radar tools
func radarOpt(p Params) *RadarOpt {
	return &RadarOpt{
		Power:     p["Pt"],
		GainDB:    p["G"],
		Frequency: p["f"],
		RCS:       p["rcs"],
		MinSignal: p["Smin"],
		LossDB:    p["L"],
	}
}

func init() {
	register(&Tool{
		Name:   "isentropic",
		Desc:   "Isentropic flow relations at Mach M",
		Params: Params{"M": required, "gamma": GAMMA},
		Calc: func(p Params, _ Series) (any, error) {
			return result[IsentropicSol](CalcIsentropic(p["M"], p["gamma"]))
		},
	})
	register(&Tool{
		Name:   "mach-from-p",
		Desc:   "Mach number from the static to total pressure ratio p/p0",
		Params: Params{"ratio": required, "gamma": GAMMA},
		Calc: func(p Params, _ Series) (any, error) {
			return machResult(MachFromPressureRatio(p["ratio"], p["gamma"]))
		},
	})
	register(&Tool{
		Name:   "mach-from-a",
		Desc:   "Mach number from the area ratio A/A* (supersonic=1 selects the supersonic branch)",
		Params: Params{"ratio": required, "gamma": GAMMA, "supersonic": 1},
		Calc: func(p Params, _ Series) (any, error) {
			return machResult(MachFromAreaRatio(p["ratio"], p["gamma"], p["supersonic"] != 0))
		},
	})
	register(&Tool{
		Name:   "mach-from-t",
		Desc:   "Mach number from the static to total temperature ratio T/T0",
		Params: Params{"ratio": required, "gamma": GAMMA},
		Calc: func(p Params, _ Series) (any, error) {
			return machResult(MachFromTemperatureRatio(p["ratio"], p["gamma"]))
		},
	})
	register(&Tool{
		Name:   "mach-from-rho",
		Desc:   "Mach number from the static to total density ratio ρ/ρ0",
		Params: Params{"ratio": required, "gamma": GAMMA},
		Calc: func(p Params, _ Series) (any, error) {
			return machResult(MachFromDensityRatio(p["ratio"], p["gamma"]))
		},
	})
	register(&Tool{
		Name:   "mach-from-nu",
		Desc:   "Supersonic Mach number from the Prandtl-Meyer angle nu [deg]",
		Params: Params{"nu": required, "gamma": GAMMA},
		Calc: func(p Params, _ Series) (any, error) {
			return machResult(MachFromPrandtlMeyer(p["nu"], p["gamma"]))
		},
	})
	register(&Tool{
		Name:   "normal-shock",
		Desc:   "Normal shock jump conditions for upstream Mach M1",
		Params: Params{"M1": required, "gamma": GAMMA},
		Calc: func(p Params, _ Series) (any, error) {
			return result[NormalShockSol](CalcNormalShock(p["M1"], p["gamma"]))
		},
	})
	register(&Tool{
		Name:   "pitot",
		Desc:   "Normal shock from the Rayleigh-Pitot ratio p02/p1",
		Params: Params{"ratio": required, "gamma": GAMMA},
		Calc: func(p Params, _ Series) (any, error) {
			return result[NormalShockSol](CalcFromPitotRatio(p["ratio"], p["gamma"]))
		},
	})
	register(&Tool{
		Name:   "normal-from-p",
		Desc:   "Normal shock from the static pressure ratio p2/p1",
		Params: Params{"ratio": required, "gamma": GAMMA},
		Calc: func(p Params, _ Series) (any, error) {
			return result[NormalShockSol](CalcFromPressureRatio(p["ratio"], p["gamma"]))
		},
	})
	register(&Tool{
		Name:   "critical-mach",
		Desc:   "Upstream Mach number where a normal shock leaves 1% of the stagnation pressure",
		Params: Params{"gamma": GAMMA},
		Calc: func(p Params, _ Series) (any, error) {
			return machResult(FindCriticalMach(p["gamma"]))
		},
	})
	register(&Tool{
		Name:   "max-deflection",
		Desc:   "Maximum deflection of an attached oblique shock [deg]",
		Params: Params{"M1": required, "gamma": GAMMA},
		Calc: func(p Params, _ Series) (any, error) {
			return result[Deflection](MaxDeflection(p["M1"], p["gamma"]))
		},
	})
	register(&Tool{
		Name:   "oblique-shock",
		Desc:   "Attached oblique shock for deflection theta [deg] (strong=1 selects the strong branch)",
		Params: Params{"M1": required, "theta": required, "gamma": GAMMA, "strong": 0},
		Calc: func(p Params, _ Series) (any, error) {
			branch := Weak
			if p["strong"] != 0 {
				branch = Strong
			}
			return result[ObliqueShockSol](CalcObliqueShock(p["M1"], p["theta"], p["gamma"], branch))
		},
	})
	register(&Tool{
		Name:   "mach",
		Desc:   "Mach number of speed v [m/s] at temperature T [K]",
		Params: Params{"v": required, "T": T0_ISA, "gamma": GAMMA, "R": R_AIR},
		Calc: func(p Params, _ Series) (any, error) {
			return machResult(MachNumber(p["v"], p["T"], p["gamma"], p["R"]))
		},
	})
	register(&Tool{
		Name:   "atmosphere",
		Desc:   "ISA standard atmosphere at altitude h [m]",
		Params: Params{"h": required},
		Calc: func(p Params, _ Series) (any, error) {
			return result[AtmosphereSol](StandardAtmosphere(p["h"]))
		},
	})
	register(&Tool{
		Name:   "hohmann",
		Desc:   "Hohmann transfer between circular orbits of radii r1, r2 [m]",
		Params: Params{"r1": required, "r2": required, "mu": MU_E},
		Calc: func(p Params, _ Series) (any, error) {
			return result[HohmannSol](CalcHohmann(p["r1"], p["r2"], p["mu"]))
		},
	})
	register(&Tool{
		Name:   "sphere-drag",
		Desc:   "Drag of a sphere of diameter d [m] at speed v [m/s]",
		Params: Params{"rho": RHO_ISA, "v": required, "d": required, "mu": 1.789e-5},
		Calc: func(p Params, _ Series) (any, error) {
			return result[SphereDragSol](CalcSphereDrag(p["rho"], p["v"], p["d"], p["mu"]))
		},
	})
	register(&Tool{
		Name:   "lift-drag",
		Desc:   "Lift and drag of a finite wing with a parabolic drag polar",
		Params: Params{"rho": RHO_ISA, "v": required, "S": required, "cl": required, "cd0": 0.02, "AR": 8, "e": 0.8},
		Calc: func(p Params, _ Series) (any, error) {
			return result[LiftDragSol](CalcLiftDrag(p["rho"], p["v"], p["S"], p["cl"], p["cd0"], p["AR"], p["e"]))
		},
	})
	register(&Tool{
		Name:   "weight",
		Desc:   "Take-off weight breakdown [kg]",
		Params: Params{"empty": required, "payload": 0, "fuel": 0},
		Calc: func(p Params, _ Series) (any, error) {
			return result[WeightSol](CalcWeightBreakdown(p["empty"], p["payload"], p["fuel"]))
		},
	})
	register(&Tool{
		Name:   "breguet",
		Desc:   "Jet Breguet range [m] (tsfc is weight specific, in 1/s)",
		Params: Params{"v": required, "tsfc": required, "LD": required, "wi": required, "wf": required},
		Calc: func(p Params, _ Series) (any, error) {
			r, err := BreguetRange(p["v"], p["tsfc"], p["LD"], p["wi"], p["wf"])
			return valueResult(r, "m", err)
		},
	})
	register(&Tool{
		Name: "range-payload",
		Desc: "Range-payload diagram sampled at npts payloads (tsfc is weight specific, in 1/s)",
		Params: Params{"empty": required, "maxPayload": required, "maxFuel": required, "mtow": required,
			"v": required, "tsfc": required, "LD": required, "reserve": 0, "npts": 11},
		Calc: func(p Params, _ Series) (any, error) {
			npts := p["npts"]
			if npts != math.Trunc(npts) || npts > math.MaxInt32 {
				return nil, fmt.Errorf("%w: npts must be an integer (npts=%g)", ErrDomain, npts)
			}
			pts, err := RangePayload(&RangePayloadOpt{
				Empty:      p["empty"],
				MaxPayload: p["maxPayload"],
				MaxFuel:    p["maxFuel"],
				MTOW:       p["mtow"],
				Speed:      p["v"],
				TSFC:       p["tsfc"],
				LD:         p["LD"],
				Reserve:    p["reserve"],
			}, int(npts))
			if err != nil {
				return nil, err
			}
			return &RangePayloadSol{Points: pts}, nil
		},
	})
	register(&Tool{
		Name:   "drag-polar",
		Desc:   "Least squares fit of Cd = Cd0 + K Cl² to the arrays cl, cd (optional weights w)",
		Params: Params{"AR": 0},
		Series: map[string]bool{"cl": true, "cd": true, "w": false},
		Calc: func(p Params, s Series) (any, error) {
			return result[PolarFit](FitDragPolar(s["cl"], s["cd"], s["w"], p["AR"]))
		},
	})
	register(&Tool{
		Name:   "radar-range",
		Desc:   "Maximum detection range of a monostatic radar [m]",
		Params: Params{"Pt": required, "G": required, "f": required, "rcs": 1, "Smin": required, "L": 0},
		Calc: func(p Params, _ Series) (any, error) {
			r, err := RadarMaxRange(radarOpt(p))
			return valueResult(r, "m", err)
		},
	})
	register(&Tool{
		Name:   "radar-power",
		Desc:   "Echo power [W] of a monostatic radar from a target at range R [m]",
		Params: Params{"Pt": required, "G": required, "f": required, "rcs": 1, "L": 0, "R": required},
		Calc: func(p Params, _ Series) (any, error) {
			pr, err := RadarReceivedPower(radarOpt(p), p["R"])
			return valueResult(pr, "W", err)
		},
	})
	register(&Tool{
		Name:   "redshift",
		Desc:   "Redshift, recession velocity and Hubble distance of a spectral line",
		Params: Params{"observed": required, "emitted": required, "H0": H0},
		Calc: func(p Params, _ Series) (any, error) {
			return result[RedshiftSol](CalcRedshift(p["observed"], p["emitted"], p["H0"]))
		},
	})
	register(&Tool{
		Name:   "z-from-v",
		Desc:   "Redshift of a source receding at velocity v [m/s] (relativistic Doppler)",
		Params: Params{"v": required},
		Calc: func(p Params, _ Series) (any, error) {
			z, err := ZFromVelocity(p["v"])
			return valueResult(z, "", err)
		},
	})
	register(&Tool{
		Name:   "isp",
		Desc:   "Specific impulse from thrust F [N] and mass flow mdot [kg/s]",
		Params: Params{"F": required, "mdot": required, "t": 0, "m": 0},
		Calc: func(p Params, _ Series) (any, error) {
			return result[ImpulseSol](CalcSpecificImpulse(p["F"], p["mdot"], p["t"], p["m"]))
		},
	})
	register(&Tool{
		Name:   "delta-v",
		Desc:   "Ideal rocket velocity change [m/s]",
		Params: Params{"isp": required, "m0": required, "mf": required},
		Calc: func(p Params, _ Series) (any, error) {
			dv, err := RocketDeltaV(p["isp"], p["m0"], p["mf"])
			return valueResult(dv, "m/s", err)
		},
	})
	register(&Tool{
		Name:   "propellant-fraction",
		Desc:   "Propellant mass fraction needed for a velocity change dv [m/s]",
		Params: Params{"dv": required, "isp": required},
		Calc: func(p Params, _ Series) (any, error) {
			f, err := PropellantFraction(p["dv"], p["isp"])
			return valueResult(f, "", err)
		},
	})
}
