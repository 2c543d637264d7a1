package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAction(t *testing.T) {
	m := New()
	m.ObserveAction("extraction", OutcomeOK)
	m.ObserveAction("extraction", OutcomeOK)
	m.ObserveAction("extraction", OutcomeAPIError)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.actions.WithLabelValues("extraction", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("extraction", OutcomeAPIError)))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveUpload(OutcomeOK)
	m.ObserveLLM(1500 * time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `analyst_uploads_total{outcome="ok"} 1`)
	assert.Contains(t, string(body), "analyst_llm_request_duration_seconds_count 1")
}
