// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

package aerocalc

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"golang.org/x/exp/slices"
)

func Test_tools01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tools01. registry")

	names := Tools()
	io.Pforan("tools = %v\n", names)
	if !slices.IsSorted(names) {
		tst.Errorf("tool names must be sorted: %v\n", names)
	}
	for _, name := range []string{"isentropic", "mach-from-p", "mach-from-a", "mach-from-t", "normal-shock",
		"pitot", "critical-mach", "max-deflection", "oblique-shock", "hohmann", "sphere-drag", "weight",
		"breguet", "range-payload", "radar-range", "radar-power", "redshift", "z-from-v", "isp",
		"propellant-fraction", "drag-polar"} {
		if !slices.Contains(names, name) {
			tst.Errorf("tool %q is not registered\n", name)
		}
	}

	if _, err := Lookup("warp-drive"); !errors.Is(err, ErrUnknownTool) {
		tst.Errorf("unknown tool must fail with ErrUnknownTool: %v\n", err)
	}

	t, _ := Lookup("oblique-shock")
	p, err := t.Resolve(Params{"M1": 2, "theta": 10})
	if err != nil {
		tst.Errorf("Resolve failed: %v\n", err)
		return
	}
	chk.Float64(tst, "default gamma", 1e-15, p["gamma"], GAMMA)
	chk.Float64(tst, "default strong", 1e-15, p["strong"], 0)
	if _, ok := t.Params["M1"]; !ok {
		tst.Errorf("Resolve must not modify the defaults\n")
	}
	if _, err := t.Resolve(Params{"M1": 2}); !errors.Is(err, ErrDomain) {
		tst.Errorf("missing theta must be rejected: %v\n", err)
	}
	if _, err := t.Resolve(Params{"M1": 2, "theta": 10, "beta": 40}); !errors.Is(err, ErrDomain) {
		tst.Errorf("unknown parameter must be rejected: %v\n", err)
	}
}

func Test_tools02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tools02. run")

	res, err := Run("oblique-shock", Params{"M1": 2, "theta": 10, "strong": 1}, nil)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	osol, ok := res.(*ObliqueShockSol)
	if !ok {
		tst.Errorf("unexpected result type %T\n", res)
		return
	}
	if osol.Branch != Strong {
		tst.Errorf("strong=1 must select the strong branch\n")
	}

	// a failed calculation returns a nil interface, not a typed nil pointer
	res, err = Run("oblique-shock", Params{"M1": 2, "theta": 50}, nil)
	if !errors.Is(err, ErrDetached) {
		tst.Errorf("θ=50° must detach: %v\n", err)
	}
	if res != nil {
		tst.Errorf("failed calculation must return a nil result, got %#v\n", res)
	}

	res, err = Run("mach-from-a", Params{"ratio": 1.6875}, nil)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	chk.Float64(tst, "M", 1e-6, res.(*MachSol).Mach, 2)

	res, err = Run("delta-v", Params{"isp": 300, "m0": 2, "mf": 1}, nil)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	if res.(*ValueSol).Unit != "m/s" {
		tst.Errorf("delta-v must be in m/s\n")
	}

	// every tool accepts its own defaults once the required values are filled
	required := map[string]Params{
		"isentropic":     {"M": 2},
		"mach-from-p":    {"ratio": 0.5},
		"mach-from-a":    {"ratio": 2},
		"mach-from-t":    {"ratio": 0.8},
		"mach-from-rho":  {"ratio": 0.7},
		"mach-from-nu":   {"nu": 20},
		"normal-shock":   {"M1": 3},
		"pitot":          {"ratio": 10},
		"normal-from-p":  {"ratio": 4.5},
		"max-deflection": {"M1": 3},
		"oblique-shock":  {"M1": 3, "theta": 15},
		"mach":           {"v": 250},
		"atmosphere":     {"h": 10000},
		"hohmann":        {"r1": 7000e3, "r2": 8000e3},
		"sphere-drag":    {"v": 10, "d": 0.1},
		"lift-drag":      {"v": 60, "S": 20, "cl": 0.6},
		"weight":         {"empty": 1000, "payload": 200, "fuel": 300},
		"breguet":        {"v": 230, "tsfc": 1.6e-4, "LD": 17, "wi": 70000, "wf": 55000},
		"radar-range":    {"Pt": 1e6, "G": 40, "f": 3e9, "Smin": 1e-13},
		"redshift":       {"observed": 700, "emitted": 656.1},
		"isp":            {"F": 1000, "mdot": 0.4},
		"delta-v":        {"isp": 300, "m0": 3, "mf": 1},
		"range-payload": {"empty": 40000, "maxPayload": 20000, "maxFuel": 30000, "mtow": 75000,
			"v": 230, "tsfc": 1.6e-4, "LD": 17},
		"radar-power":         {"Pt": 1e6, "G": 40, "f": 3e9, "R": 100e3},
		"z-from-v":            {"v": 3e7},
		"propellant-fraction": {"dv": 3000, "isp": 300},
	}
	series := map[string]Series{
		"drag-polar": {"cl": {0.1, 0.5, 0.9}, "cd": {0.021, 0.032, 0.06}},
	}
	for _, name := range Tools() {
		res, err := Run(name, required[name], series[name])
		if err != nil {
			tst.Errorf("%s failed: %v\n", name, err)
			continue
		}
		if len(Fields(res)) == 0 {
			tst.Errorf("%s returned no fields\n", name)
		}
	}
}

func Test_tools03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tools03. diagrams, arrays and inverse calculators")

	in := Params{"empty": 40000, "maxPayload": 20000, "maxFuel": 30000, "mtow": 75000,
		"v": 230, "tsfc": 1.6e-4, "LD": 17, "reserve": 0.05, "npts": 5}
	res, err := Run("range-payload", in, nil)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	pts := res.(*RangePayloadSol).Points
	ref, _ := RangePayload(&RangePayloadOpt{Empty: 40000, MaxPayload: 20000, MaxFuel: 30000, MTOW: 75000,
		Speed: 230, TSFC: 1.6e-4, LD: 17, Reserve: 0.05}, 5)
	if len(pts) != len(ref) {
		tst.Errorf("%d points expected, got %d\n", len(ref), len(pts))
		return
	}
	for i := range pts {
		chk.Float64(tst, io.Sf("range %d", i), 1e-6, pts[i].Range, ref[i].Range)
	}
	in["npts"] = 2.5
	if _, err = Run("range-payload", in, nil); !errors.Is(err, ErrDomain) {
		tst.Errorf("fractional npts must be rejected: %v\n", err)
	}

	radar := Params{"Pt": 1e6, "G": 40, "f": 3e9, "R": 50e3}
	res, err = Run("radar-power", radar, nil)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	p1 := res.(*ValueSol).Value
	radar["R"] = 100e3
	res, _ = Run("radar-power", radar, nil)
	chk.Float64(tst, "Pr(R)/Pr(2R)", 1e-9, p1/res.(*ValueSol).Value, 16)

	res, err = Run("z-from-v", Params{"v": 0.6 * C}, nil)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	chk.Float64(tst, "z(0.6c)", 1e-12, res.(*ValueSol).Value, 1)

	dv, _ := RocketDeltaV(300, 3, 1)
	res, err = Run("propellant-fraction", Params{"dv": dv, "isp": 300}, nil)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	chk.Float64(tst, "mp/m0", 1e-12, res.(*ValueSol).Value, 2.0/3.0)

	cl := []float64{0, 0.2, 0.4, 0.6, 0.8, 1.0}
	cd := []float64{0.02, 0.022, 0.028, 0.038, 0.052, 0.07}
	res, err = Run("drag-polar", Params{"AR": 8}, Series{"cl": cl, "cd": cd, "w": {1, 1, 2, 2, 1, 1}})
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	fit := res.(*PolarFit)
	chk.Float64(tst, "Cd0", 1e-10, fit.Cd0, 0.02)
	chk.Float64(tst, "K", 1e-10, fit.K, 0.05)

	if _, err = Run("drag-polar", nil, Series{"cl": cl}); !errors.Is(err, ErrDomain) {
		tst.Errorf("missing cd must be rejected: %v\n", err)
	}
	if _, err = Run("drag-polar", nil, Series{"cl": cl, "cd": cd, "alpha": cl}); !errors.Is(err, ErrDomain) {
		tst.Errorf("unknown array must be rejected: %v\n", err)
	}
	if _, err = Run("delta-v", Params{"isp": 300, "m0": 2, "mf": 1}, Series{"m": {1, 2}}); !errors.Is(err, ErrDomain) {
		tst.Errorf("arrays must be rejected by scalar tools: %v\n", err)
	}
}

func Test_params01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("params01. command line values")

	var p ParamVar
	if err := p.Set("M1=2, theta=10,strong=1"); err != nil {
		tst.Errorf("Set failed: %v\n", err)
		return
	}
	chk.Float64(tst, "M1", 1e-15, p["M1"], 2)
	chk.Float64(tst, "theta", 1e-15, p["theta"], 10)
	if err := p.Set("gamma=1.3"); err != nil {
		tst.Errorf("Set failed: %v\n", err)
		return
	}
	if s := p.String(); s != "M1=2,gamma=1.3,strong=1,theta=10" {
		tst.Errorf("unexpected String: %q\n", s)
	}
	if err := p.Set("theta"); err == nil {
		tst.Errorf("value is required\n")
	}
	if err := p.Set("theta=ten"); err == nil {
		tst.Errorf("value must be numeric\n")
	}

	var b Branch
	for _, s := range []string{"strong", "S", "1"} {
		b = Weak
		if err := b.Set(s); err != nil || b != Strong {
			tst.Errorf("%q must select the strong branch\n", s)
		}
	}
	if err := b.Set("medium"); err == nil {
		tst.Errorf("unknown branch must be rejected\n")
	}
	if Weak.String() != "weak" || Strong.String() != "strong" {
		tst.Errorf("unexpected branch names %v %v\n", Weak, Strong)
	}
}

func Test_report01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("report01. fields")

	sol, _ := CalcIsentropic(0.5, GAMMA)
	fs := Fields(sol)
	if fs[0].Name != "Mach" || fs[0].Value != 0.5 {
		tst.Errorf("first field must be Mach=0.5, got %+v\n", fs[0])
	}

	fm := FieldMap(sol)
	if v, ok := fm["MachAngle"]; !ok || v != nil {
		tst.Errorf("NaN must map to nil, got %v\n", v)
	}

	osol, _ := CalcObliqueShock(2, 10, GAMMA, Strong)
	if FieldMap(osol)["Branch"] != "strong" {
		tst.Errorf("branch must be reported by name, got %v\n", FieldMap(osol)["Branch"])
	}

	var buf bytes.Buffer
	PrintFields(&buf, &ValueSol{Value: 1.5, Unit: "m"})
	io.Pforan("%s", buf.String())
	if !strings.Contains(buf.String(), "Value") || !strings.Contains(buf.String(), ": m") {
		tst.Errorf("unexpected output:\n%s\n", buf.String())
	}
	buf.Reset()
	PrintFields(&buf, &RangePayloadSol{Points: []RangePayloadPoint{{Payload: 1, Fuel: 2, Range: 3}, {Payload: 4}}})
	io.Pforan("%s", buf.String())
	if !strings.Contains(buf.String(), "Points[1]") || !strings.Contains(buf.String(), "Payload=1 Fuel=2 Range=3") {
		tst.Errorf("unexpected output:\n%s\n", buf.String())
	}
}
