package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sourabh71/AI-Analyst/internal/metrics"
	"github.com/Sourabh71/AI-Analyst/internal/models"
	"github.com/Sourabh71/AI-Analyst/internal/services"
	"github.com/Sourabh71/AI-Analyst/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// missingSessions reports every session as unknown.
type missingSessions struct {
	services.SessionService
}

func (missingSessions) GetSession(context.Context, string) (*models.Session, error) {
	return nil, utils.NewNotFoundError("Session not found")
}

func newTestHandler() http.Handler {
	return NewRouter(missingSessions{}, Options{
		MaxFileSize:    1 << 20,
		AllowedOrigins: []string{"https://analyst.example.com"},
		Metrics:        metrics.New(),
	}, utils.NopLogger())
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestUnknownSession(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Session not found"}`, rec.Body.String())
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://analyst.example.com")

	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	assert.Equal(t, "https://analyst.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
