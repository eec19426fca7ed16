// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRecordOperation(t *testing.T) {
	c := configOperationsTotal.WithLabelValues("read", "toml", OutcomeFailure)
	before := counterValue(t, c)

	RecordOperation("read", "toml", false)
	RecordOperation("read", "toml", false)

	assert.Equal(t, before+2, counterValue(t, c))
}

func TestEmptyLabelsBecomeUnknown(t *testing.T) {
	c := coercionFallbacksTotal.WithLabelValues("unknown")
	before := counterValue(t, c)

	IncCoercionFallback("")

	assert.Equal(t, before+1, counterValue(t, c))
}

func TestPromhttpExposure(t *testing.T) {
	RecordDefaultsMaterialized("json", true)
	IncMalformedLine("properties")

	recorder := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	body := recorder.Body.String()
	assert.True(t, strings.Contains(body, `gameconf_config_defaults_materialized_total{format="json",outcome="success"}`))
	assert.True(t, strings.Contains(body, `gameconf_malformed_lines_total{format="properties"}`))
}
