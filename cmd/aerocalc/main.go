// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	m "github.com/mkhts/aerocalc"
	"github.com/mkhts/aerocalc/metrics"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func main() {

	// Parse command line arguments
	args, err := parseArgs()
	if err != nil {
		m.PrintE(err)
		flag.Usage()
		os.Exit(1)
	}

	// Run the main application
	if err := runApplication(args); err != nil {
		m.PrintE(err)
		os.Exit(1)
	}
}

// Main application processing
func runApplication(args cmdOpt) error {

	// Server mode
	if len(args.httpAddr) > 0 {
		return startServer(args.httpAddr)
	}

	// List the calculators
	if args.list {
		printTools(os.Stdout)
		return nil
	}

	// Prepare output file
	out, err := prepareOutput(args)
	if err != nil {
		return fmt.Errorf("failed to prepare output: %w", err)
	}
	return runToolTo(args, out)
}

// Run one calculation into out and close it. A failed close is reported when the
// calculation itself succeeded.
func runToolTo(args cmdOpt, out io.WriteCloser) (err error) {
	defer func() {
		if cerr := closeOutput(out); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	return runTool(args, out)
}

// Run one calculation and print it
func runTool(args cmdOpt, out io.Writer) error {

	params, err := toolParams(args)
	if err != nil {
		return err
	}

	res, err := metrics.Run(args.tool, params, m.Series(args.series))
	if err != nil && res == nil {
		return fmt.Errorf("%s failed: %w", args.tool, err)
	}

	if args.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newToolResponse(args.tool, res, err)); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	} else {
		fmt.Fprintf(out, "%% tool      : %s\n", args.tool)
		pv := m.ParamVar(params)
		fmt.Fprintf(out, "%% params    : %s\n", pv.String())
		if len(args.series) > 0 {
			fmt.Fprintf(out, "%% arrays    : %s\n", args.series.String())
		}
		m.PrintFields(out, res)
	}

	// Best effort value of a solver that ran out of iterations
	if errors.Is(err, m.ErrNotConverged) {
		return fmt.Errorf("%s: result above is not converged: %w", args.tool, err)
	}
	return nil
}

// Build the tool parameters, filling gamma and R from the gas preset when the tool takes them
func toolParams(args cmdOpt) (m.Params, error) {
	t, err := m.Lookup(args.tool)
	if err != nil {
		return nil, err
	}
	params := m.Params(maps.Clone(args.params))
	if params == nil {
		params = m.Params{}
	}
	if len(args.gas) > 0 {
		gas, ok := m.Gases[strings.ToLower(args.gas)]
		if !ok {
			names := maps.Keys(m.Gases)
			slices.Sort(names)
			return nil, fmt.Errorf("unknown gas %q (available: %s)", args.gas, strings.Join(names, ","))
		}
		m.PrintD(1, "gas: %s gamma=%g R=%g\n", gas.Name, gas.Gamma, gas.R)
		if _, ok := t.Params["gamma"]; ok {
			if _, set := params["gamma"]; !set {
				params["gamma"] = gas.Gamma
			}
		}
		if _, ok := t.Params["R"]; ok {
			if _, set := params["R"]; !set {
				params["R"] = gas.R
			}
		}
	}
	return params, nil
}

// Print the calculators and their parameters
func printTools(w io.Writer) {
	for _, name := range m.Tools() {
		t, _ := m.Lookup(name)
		fmt.Fprintf(w, "%-16s %s\n", name, t.Desc)
		ps := []string{}
		for _, p := range t.ParamNames() {
			if v := t.Params[p]; math.IsNaN(v) {
				ps = append(ps, p)
			} else {
				ps = append(ps, fmt.Sprintf("%s=%g", p, v))
			}
		}
		fmt.Fprintf(w, "%-16s   params: %s\n", "", strings.Join(ps, ", "))
		if len(t.Series) > 0 {
			as := []string{}
			for _, k := range t.SeriesNames() {
				if t.Series[k] {
					as = append(as, k)
				} else {
					as = append(as, k+" (optional)")
				}
			}
			fmt.Fprintf(w, "%-16s   arrays: %s\n", "", strings.Join(as, ", "))
		}
	}
}

// Prepare output file
func prepareOutput(args cmdOpt) (io.WriteCloser, error) {

	// Use stdout if no output file is specified
	if len(args.outFn) == 0 {
		return &nopCloser{os.Stdout}, nil
	}

	// Create output file
	f, err := os.Create(args.outFn)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// Close output file
func closeOutput(out io.WriteCloser) error {
	if out == nil {
		return nil
	}
	return out.Close()
}

// nopCloser - WriteCloser that ignores close operations
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Structure to hold command line argument information
type cmdOpt struct {
	tool     string
	params   m.ParamVar
	series   m.SeriesVar
	gas      string
	outFn    string
	json     bool
	list     bool
	httpAddr string
}

// Parse command line arguments
func parseArgs() (a cmdOpt, err error) {
	flag.Usage = func() {
		m.PrintA(`
[Usage]
	%s [Options] -p "name=value,..." tool    run one calculation
	%s -s "cl=0.2,0.4,0.6" -s "cd=..." tool    run a calculation taking arrays
	%s -l                                    list the calculators and their parameters
	%s -http :8080                           serve the calculators over HTTP

[Options]
`, filepath.Base(os.Args[0]), filepath.Base(os.Args[0]), filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Var(&a.params, "p", "Tool parameters. Comma-separated without spaces like -p \"M1=2,theta=10,strong=1\". Omitted parameters take their default value.")
	flag.Var(&a.series, "s", "Array input of the tool like -s \"cl=0.2,0.4,0.6\". Repeat the flag for each array.")
	flag.StringVar(&a.gas, "gas", "", "Gas preset (air, helium, argon, co2, ...). Sets gamma and R unless given with -p.")
	flag.StringVar(&a.outFn, "o", "", "Output file path. If not specified, output to stdout.")
	flag.BoolVar(&a.json, "json", false, "Write the result as JSON.")
	flag.BoolVar(&a.list, "l", false, "List the calculators and their parameters.")
	flag.StringVar(&a.httpAddr, "http", "", "Serve the calculators and prometheus metrics on this address instead of running one calculation.")
	var dbg int
	flag.IntVar(&dbg, "x", 0, "Debug information display. Specify level value. 0(OFF), 1(display), 2(detailed display), 3(solver convergence), 4(every iteration)")
	flag.Parse()
	m.DBG_ = dbg
	if a.list || len(a.httpAddr) > 0 {
		return a, nil
	}
	switch flag.NArg() {
	case 1:
		a.tool = flag.Arg(0)
	default:
		return a, fmt.Errorf("exactly one tool name must be given (see -l)")
	}
	if _, err := m.Lookup(a.tool); err != nil {
		return a, err
	}
	return a, nil
}
