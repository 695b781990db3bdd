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
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	m "github.com/mkhts/aerocalc"
	"github.com/mkhts/aerocalc/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Serve the calculators until the listener fails
func startServer(addr string) error {
	m.PrintA("aerocalc server listening at %s\n", addr)
	return http.ListenAndServe(addr, newRouter())
}

func newRouter() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/tools", listToolsHandler).Methods("GET")
	router.HandleFunc("/tools/{name}", runToolHandler).Methods("GET", "POST")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return router
}

// Description of one calculator
type toolInfo struct {
	Name   string              `json:"name"`
	Desc   string              `json:"desc"`
	Params map[string]*float64 `json:"params"`           // null for required parameters
	Series map[string]bool     `json:"series,omitempty"` // array inputs, true when required
}

// Result of one calculation
type toolResponse struct {
	Tool      string         `json:"tool"`
	Converged bool           `json:"converged"`
	Result    map[string]any `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func newToolResponse(tool string, res any, err error) *toolResponse {
	r := &toolResponse{
		Tool:      tool,
		Converged: err == nil,
	}
	if res != nil {
		r.Result = m.FieldMap(res)
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

func listToolsHandler(w http.ResponseWriter, r *http.Request) {
	infos := []toolInfo{}
	for _, name := range m.Tools() {
		t, _ := m.Lookup(name)
		info := toolInfo{Name: t.Name, Desc: t.Desc, Params: map[string]*float64{}, Series: t.Series}
		for k, v := range t.Params {
			v := v
			if math.IsNaN(v) {
				info.Params[k] = nil
				continue
			}
			info.Params[k] = &v
		}
		infos = append(infos, info)
	}
	writeJSON(w, http.StatusOK, infos)
}

func runToolHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	// Parameters come from the JSON body (POST) or the query string (GET).
	// Arrays are JSON arrays in the body and comma-separated lists in the query.
	params, series := m.Params{}, m.Series{}
	if r.Method == http.MethodPost {
		body := map[string]json.RawMessage{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
			return
		}
		for k, raw := range body {
			var v float64
			if err := json.Unmarshal(raw, &v); err == nil {
				params[k] = v
				continue
			}
			var vs []float64
			if err := json.Unmarshal(raw, &vs); err != nil {
				http.Error(w, fmt.Sprintf("Invalid value of parameter %q", k), http.StatusBadRequest)
				return
			}
			series[k] = vs
		}
	} else {
		for k, vs := range r.URL.Query() {
			if len(vs) == 0 {
				continue
			}
			if strings.Contains(vs[0], ",") {
				xs, err := m.ParseFloats(vs[0])
				if err != nil {
					http.Error(w, fmt.Sprintf("Invalid value of array %q", k), http.StatusBadRequest)
					return
				}
				series[k] = xs
				continue
			}
			v, err := strconv.ParseFloat(vs[0], 64)
			if err != nil {
				http.Error(w, fmt.Sprintf("Invalid value of parameter %q", k), http.StatusBadRequest)
				return
			}
			params[k] = v
		}
	}

	res, err := metrics.Run(name, params, series)
	writeJSON(w, statusCode(err, res), newToolResponse(name, res, err))
}

// HTTP status for a calculation outcome. A best-effort result of a solver that ran
// out of iterations is still delivered.
func statusCode(err error, res any) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, m.ErrUnknownTool):
		return http.StatusNotFound
	case errors.Is(err, m.ErrNotConverged) && res != nil:
		return http.StatusOK
	case errors.Is(err, m.ErrDomain), errors.Is(err, m.ErrDetached):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		m.PrintE(err)
	}
}
