// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

package aerocalc

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ------------------------------------
// Errors
// ------------------------------------

var (
	ErrDomain       = errors.New("input out of domain")
	ErrNotConverged = errors.New("solver did not converge")
	ErrDetached     = errors.New("shock detached")
	ErrUnknownTool  = errors.New("unknown tool")
)

// checkGamma rejects specific heat ratios that would break every exponent
func checkGamma(gamma float64) error {
	if !(gamma > 1) || math.IsInf(gamma, 0) {
		return fmt.Errorf("%w: gamma must be greater than 1 (gamma=%g)", ErrDomain, gamma)
	}
	return nil
}

// ------------------------------------
// Mini functions
// ------------------------------------

func SQ(x float64) float64 {
	return x * x
}

func ToDeg(rad float64) float64 {
	return unit.Angle(rad).Deg()
}

func ToRad(deg float64) float64 {
	return unit.AngleFromDeg(deg).Rad()
}

// ------------------------------------
// Debug print function
// ------------------------------------

func PrintA(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
}

func PrintAIf(cond bool, format string, a ...any) {
	if cond {
		PrintA(format, a...)
	}
}

// Debug display level
var DBG_ int

// Debug display
func PrintD(v int, format string, a ...any) {
	PrintAIf(DBG_ >= v, format, a...)
}

func PrintE(err error) {
	fmt.Fprintf(os.Stderr, "err=%s\n", err.Error())
}

// ------------------------------------
// For command argument parsing
// ------------------------------------

// Tool parameters given as "name=value,name=value"
type ParamVar map[string]float64

func (p *ParamVar) Set(s string) error {
	if *p == nil {
		*p = ParamVar{}
	}
	for _, a := range strings.Split(s, ",") {
		if len(strings.TrimSpace(a)) == 0 {
			continue
		}
		kv := strings.SplitN(a, "=", 2)
		if len(kv) != 2 {
			return fmt.Errorf("invalid parameter %q, expected name=value", a)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return fmt.Errorf("invalid value of parameter %q: %w", kv[0], err)
		}
		(*p)[strings.TrimSpace(kv[0])] = v
	}
	return nil
}

func (p *ParamVar) String() string {
	if p == nil || *p == nil {
		return ""
	}
	keys := maps.Keys(*p)
	slices.Sort(keys)
	s := make([]string, 0, len(keys))
	for _, k := range keys {
		s = append(s, fmt.Sprintf("%s=%g", k, (*p)[k]))
	}
	return strings.Join(s, ",")
}

// SeriesVar collects array inputs given as "name=v1,v2,..." (one array per flag)
type SeriesVar map[string][]float64

func (p *SeriesVar) Set(s string) error {
	if *p == nil {
		*p = SeriesVar{}
	}
	kv := strings.SplitN(s, "=", 2)
	if len(kv) != 2 {
		return fmt.Errorf("invalid array %q, expected name=v1,v2,...", s)
	}
	vs, err := ParseFloats(kv[1])
	if err != nil {
		return fmt.Errorf("invalid array %q: %w", kv[0], err)
	}
	(*p)[strings.TrimSpace(kv[0])] = vs
	return nil
}

func (p *SeriesVar) String() string {
	if p == nil || *p == nil {
		return ""
	}
	keys := maps.Keys(*p)
	slices.Sort(keys)
	s := make([]string, 0, len(keys))
	for _, k := range keys {
		s = append(s, fmt.Sprintf("%s=%v", k, (*p)[k]))
	}
	return strings.Join(s, " ")
}

// ParseFloats parses a comma-separated list of numbers
func ParseFloats(s string) ([]float64, error) {
	fs := strings.Split(s, ",")
	vs := make([]float64, 0, len(fs))
	for _, f := range fs {
		if len(strings.TrimSpace(f)) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

// Oblique shock branch ("weak" or "strong")
func (p *Branch) Set(s string) error {
	switch strings.ToLower(s) {
	case "weak", "w", "0":
		*p = Weak
	case "strong", "s", "1":
		*p = Strong
	default:
		return fmt.Errorf("invalid branch %q", s)
	}
	return nil
}

func (p Branch) String() string {
	switch p {
	case Weak:
		return "weak"
	case Strong:
		return "strong"
	default:
		return "UNKNOWN!"
	}
}
