// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.19
//

package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/mkhts/aerocalc"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func Test_status01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("status01")

	cases := map[string]error{
		StatusOK:           nil,
		StatusNotConverged: fmt.Errorf("pitot: %w", aerocalc.ErrNotConverged),
		StatusDetached:     aerocalc.ErrDetached,
		StatusDomain:       fmt.Errorf("%w: M1=0.5", aerocalc.ErrDomain),
		StatusUnknown:      aerocalc.ErrUnknownTool,
		StatusError:        errors.New("disk full"),
	}
	for want, err := range cases {
		if got := Status(err); got != want {
			tst.Errorf("Status(%v) = %q, want %q\n", err, got, want)
		}
	}
}

func Test_run01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("run01. counters")

	ok := calcCounter.WithLabelValues("normal-shock", StatusOK)
	bad := calcCounter.WithLabelValues("normal-shock", StatusDomain)
	unknown := calcCounter.WithLabelValues("unknown", StatusUnknown)
	ok0, bad0, unknown0 := testutil.ToFloat64(ok), testutil.ToFloat64(bad), testutil.ToFloat64(unknown)

	if _, err := Run("normal-shock", aerocalc.Params{"M1": 2}, nil); err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	if _, err := Run("normal-shock", aerocalc.Params{"M1": 0.5}, nil); err == nil {
		tst.Errorf("M1=0.5 must fail\n")
		return
	}
	if _, err := Run("no-such-tool", nil, nil); err == nil {
		tst.Errorf("unknown tool must fail\n")
		return
	}

	chk.Float64(tst, "ok", 1e-15, testutil.ToFloat64(ok)-ok0, 1)
	chk.Float64(tst, "domain", 1e-15, testutil.ToFloat64(bad)-bad0, 1)
	chk.Float64(tst, "unknown", 1e-15, testutil.ToFloat64(unknown)-unknown0, 1)
	if n := testutil.CollectAndCount(calcDuration); n < 2 {
		tst.Errorf("expected a duration series per tool, got %d\n", n)
	}
}
