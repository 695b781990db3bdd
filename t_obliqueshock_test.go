// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

package aerocalc

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
)

func Test_oblique01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("oblique01. M1=2, θ=10°")

	ws, err := CalcObliqueShock(2, 10, GAMMA, Weak)
	if err != nil {
		tst.Errorf("weak CalcObliqueShock failed: %v\n", err)
		return
	}
	io.Pforan("weak = %+v\n", *ws)
	chk.Float64(tst, "β weak", 1e-3, ws.WaveAngle, 39.3139)
	chk.Float64(tst, "M2 weak", 1e-3, ws.DownstreamMach, 1.6405)
	chk.Float64(tst, "p2/p1 weak", 1e-3, ws.PressureRatio, 1.7066)
	chk.Float64(tst, "θmax", 1e-4, ws.MaxDeflectionAngle, 22.9735)
	chk.Float64(tst, "μ", 1e-9, ws.MachAngle, 30)
	if ws.DownstreamMach <= 1 {
		tst.Errorf("weak shock at M1=2 must leave a supersonic flow\n")
	}

	ss, err := CalcObliqueShock(2, 10, GAMMA, Strong)
	if err != nil {
		tst.Errorf("strong CalcObliqueShock failed: %v\n", err)
		return
	}
	io.Pforan("strong = %+v\n", *ss)
	chk.Float64(tst, "β strong", 1e-3, ss.WaveAngle, 83.7001)
	chk.Float64(tst, "M2 strong", 1e-3, ss.DownstreamMach, 0.6037)
	if ss.DownstreamMach >= 1 {
		tst.Errorf("strong shock must leave a subsonic flow\n")
	}
	if ss.Branch != Strong || ws.Branch != Weak {
		tst.Errorf("branch not recorded: weak=%v strong=%v\n", ws.Branch, ss.Branch)
	}
	if !(ss.StagnationPressureRatio < ws.StagnationPressureRatio) {
		tst.Errorf("strong shock must lose more stagnation pressure than the weak one\n")
	}
}

func Test_oblique02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("oblique02. Mach wave and maximum deflection")

	for _, branch := range []Branch{Weak, Strong} {
		mw, err := CalcObliqueShock(2, 0, GAMMA, branch)
		if err != nil {
			tst.Errorf("Mach wave failed: %v\n", err)
			return
		}
		chk.Float64(tst, "β = μ", 1e-9, mw.WaveAngle, 30)
		chk.Float64(tst, "M2 = M1", 1e-15, mw.DownstreamMach, 2)
		chk.Float64(tst, "p2/p1 = 1", 1e-15, mw.PressureRatio, 1)
	}

	defl, err := MaxDeflection(2, GAMMA)
	if err != nil {
		tst.Errorf("MaxDeflection failed: %v\n", err)
		return
	}
	io.Pforan("defl = %+v\n", *defl)
	chk.Float64(tst, "θmax", 1e-6, defl.MaxTheta, 22.973531761)
	chk.Float64(tst, "β(θmax)", 1e-4, defl.BetaAtMaxTheta, 64.66898)

	// dθ/dβ vanishes at the maximum
	chk.Float64(tst, "dθ/dβ(βmax)", 1e-6, DThetaDBeta(ToRad(defl.BetaAtMaxTheta), 2, GAMMA), 0)

	// both branches merge at θmax
	ws, err := CalcObliqueShock(2, defl.MaxTheta, GAMMA, Weak)
	if err != nil {
		tst.Errorf("weak branch at θmax failed: %v\n", err)
		return
	}
	ss, err := CalcObliqueShock(2, defl.MaxTheta, GAMMA, Strong)
	if err != nil {
		tst.Errorf("strong branch at θmax failed: %v\n", err)
		return
	}
	chk.Float64(tst, "weak β(θmax)", 1e-12, ws.WaveAngle, defl.BetaAtMaxTheta)
	chk.Float64(tst, "strong β(θmax)", 1e-12, ss.WaveAngle, defl.BetaAtMaxTheta)
}

func Test_oblique03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("oblique03. domain")

	if _, err := CalcObliqueShock(2, 50, GAMMA, Weak); !errors.Is(err, ErrDetached) {
		tst.Errorf("θ=50° at M1=2 must detach: %v\n", err)
	}
	if _, err := CalcObliqueShock(2, 23, GAMMA, Strong); !errors.Is(err, ErrDetached) {
		tst.Errorf("θ=23° at M1=2 must detach: %v\n", err)
	}
	if _, err := CalcObliqueShock(0.8, 5, GAMMA, Weak); !errors.Is(err, ErrDomain) {
		tst.Errorf("subsonic M1 must be rejected: %v\n", err)
	}
	if _, err := CalcObliqueShock(2, -5, GAMMA, Weak); !errors.Is(err, ErrDomain) {
		tst.Errorf("negative θ must be rejected: %v\n", err)
	}
	if _, err := CalcObliqueShock(2, 10, GAMMA, Branch(7)); !errors.Is(err, ErrDomain) {
		tst.Errorf("unknown branch must be rejected: %v\n", err)
	}
	if _, err := MaxDeflection(1, GAMMA); !errors.Is(err, ErrDomain) {
		tst.Errorf("M1=1 has no attached shock: %v\n", err)
	}
}

func Test_oblique04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("oblique04. sweep of M1 and θ")

	for _, m1 := range []float64{1.05, 1.2, 1.5, 2, 3, 5, 10, 20} {
		defl, err := MaxDeflection(m1, GAMMA)
		if err != nil {
			tst.Errorf("MaxDeflection failed: %v\n", err)
			return
		}
		for _, frac := range []float64{0.01, 0.1, 0.3, 0.5, 0.7, 0.9, 0.98} {
			theta := frac * defl.MaxTheta
			ws, err := CalcObliqueShock(m1, theta, GAMMA, Weak)
			if err != nil {
				tst.Errorf("weak M1=%g θ=%g failed: %v\n", m1, theta, err)
				return
			}
			ss, err := CalcObliqueShock(m1, theta, GAMMA, Strong)
			if err != nil {
				tst.Errorf("strong M1=%g θ=%g failed: %v\n", m1, theta, err)
				return
			}
			msg := io.Sf("M1=%g θ=%.4f", m1, theta)
			chk.Float64(tst, "θ(β weak) "+msg, 1e-5, ToDeg(ThetaBetaM(ToRad(ws.WaveAngle), m1, GAMMA)), theta)
			chk.Float64(tst, "θ(β strong) "+msg, 1e-5, ToDeg(ThetaBetaM(ToRad(ss.WaveAngle), m1, GAMMA)), theta)
			if !(ws.WaveAngle <= defl.BetaAtMaxTheta && ss.WaveAngle >= defl.BetaAtMaxTheta) {
				tst.Errorf("%s: roots on the wrong side of βmax=%g (weak=%g strong=%g)\n", msg, defl.BetaAtMaxTheta, ws.WaveAngle, ss.WaveAngle)
			}
			if ss.DownstreamMach >= 1 {
				tst.Errorf("%s: strong shock with supersonic M2=%g\n", msg, ss.DownstreamMach)
			}
			if ws.StagnationPressureRatio > 1 || ss.StagnationPressureRatio > 1 {
				tst.Errorf("%s: stagnation pressure gain\n", msg)
			}
		}
	}
}

func Test_oblique05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("oblique05. dθ/dβ")

	set := &fd.Settings{Formula: fd.Central, Step: 1e-6}
	for _, m1 := range []float64{1.5, 2, 5} {
		mu := math.Asin(1 / m1)
		for _, t := range []float64{0.1, 0.4, 0.7, 0.95} {
			beta := mu + t*(0.5*math.Pi-mu)
			num := fd.Derivative(func(b float64) float64 { return ThetaBetaM(b, m1, GAMMA) }, beta, set)
			chk.AnaNum(tst, io.Sf("dθ/dβ M1=%g β=%.4f", m1, beta), 1e-7, DThetaDBeta(beta, m1, GAMMA), num, chk.Verbose)
		}
	}
}
