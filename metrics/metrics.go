// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

// Package metrics exports prometheus collectors for calculator invocations.
package metrics

import (
	"errors"
	"time"

	"github.com/mkhts/aerocalc"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels
const (
	StatusOK           = "ok"
	StatusNotConverged = "not_converged"
	StatusDomain       = "domain"
	StatusDetached     = "detached"
	StatusUnknown      = "unknown_tool"
	StatusError        = "error"
)

var (
	calcCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aerocalc_calculations_total",
			Help: "Number of calculations by tool and outcome",
		},
		[]string{"tool", "status"},
	)
	calcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aerocalc_calculation_seconds",
			Help:    "Wall time of a single calculation (in seconds)",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
		[]string{"tool"},
	)
)

func init() {
	prometheus.MustRegister(calcCounter, calcDuration)
}

// Status classifies a calculation error into an outcome label
func Status(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, aerocalc.ErrNotConverged):
		return StatusNotConverged
	case errors.Is(err, aerocalc.ErrDetached):
		return StatusDetached
	case errors.Is(err, aerocalc.ErrDomain):
		return StatusDomain
	case errors.Is(err, aerocalc.ErrUnknownTool):
		return StatusUnknown
	default:
		return StatusError
	}
}

// ObserveCalc records one calculation of tool
func ObserveCalc(tool string, d time.Duration, err error) {
	status := Status(err)
	if status == StatusUnknown {
		tool = "unknown"
	}
	calcCounter.WithLabelValues(tool, status).Inc()
	calcDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// Run runs the named tool and records its outcome
func Run(name string, p aerocalc.Params, s aerocalc.Series) (any, error) {
	t := time.Now()
	res, err := aerocalc.Run(name, p, s)
	ObserveCalc(name, time.Since(t), err)
	return res, err
}
