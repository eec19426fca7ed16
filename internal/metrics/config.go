// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics exposes Prometheus counters for config operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	configOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gameconf_config_operations_total",
		Help: "Config store operations by operation, format and outcome",
	}, []string{"op", "format", "outcome"}) // op=read|write

	defaultsMaterializedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gameconf_config_defaults_materialized_total",
		Help: "Config files created from schema defaults because they did not exist",
	}, []string{"format", "outcome"})

	coercionFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gameconf_coercion_fallbacks_total",
		Help: "Field values kept raw because type coercion failed",
	}, []string{"format"})

	malformedLinesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gameconf_malformed_lines_total",
		Help: "Config file lines skipped because they could not be parsed",
	}, []string{"format"})
)

func label(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// RecordOperation counts a store read or write.
func RecordOperation(op, format string, ok bool) {
	configOperationsTotal.WithLabelValues(label(op), label(format), outcome(ok)).Inc()
}

// RecordDefaultsMaterialized counts an attempt to create a missing config file from defaults.
func RecordDefaultsMaterialized(format string, ok bool) {
	defaultsMaterializedTotal.WithLabelValues(label(format), outcome(ok)).Inc()
}

// IncCoercionFallback counts a field kept as its raw value.
func IncCoercionFallback(format string) {
	coercionFallbacksTotal.WithLabelValues(label(format)).Inc()
}

// IncMalformedLine counts a skipped config line.
func IncMalformedLine(format string) {
	malformedLinesTotal.WithLabelValues(label(format)).Inc()
}
