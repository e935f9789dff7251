package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviecli/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNoopProviders(t *testing.T) {
	providers := NoopProviders(discardLogger())
	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)
	assert.Nil(t, providers.PrometheusHTTP)

	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)
	RecordAnalysis(context.Background(), metrics, "movies.csv", 10, 4, time.Second, nil)

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTel_MetricsExposedOnPrometheusHandler(t *testing.T) {
	providers, err := InitializeOTel(config.TelemetryConfig{
		EnableMetrics: true,
		TraceExporter: "none",
		SampleRatio:   1,
		Environment:   "test",
	}, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	require.NotNil(t, providers.PrometheusHTTP)
	assert.Nil(t, providers.TracerProvider)

	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)
	RecordAnalysis(context.Background(), metrics, "movies.csv", 7, 3, 250*time.Millisecond, nil)
	RecordAnalysis(context.Background(), metrics, "movies.csv", 0, 0, time.Millisecond, errors.New("boom"))

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "movie_records_loaded_total")
	assert.Contains(t, body, "movie_records_analyzed_total")
	assert.Contains(t, body, "analysis_errors_total")
	assert.Contains(t, body, "analysis_duration_seconds")
}

func TestInitializeOTel_Tracing(t *testing.T) {
	previous := traceWriter
	traceWriter = io.Discard
	defer func() { traceWriter = previous }()

	providers, err := InitializeOTel(config.TelemetryConfig{
		EnableTracing: true,
		TraceExporter: "stdout",
		SampleRatio:   1,
	}, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	require.NotNil(t, providers.TracerProvider)

	ctx, span := providers.Tracer.Start(context.Background(), "analysis.test")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	SetSpanAttributes(ctx, map[string]interface{}{"records": 3, "source": "movies.csv"})
	AddSpanEvent(ctx, "checkpoint", map[string]interface{}{"ok": true})
	RecordError(ctx, errors.New("boom"))
	span.End()
}

func TestInitializeOTel_UnsupportedExporter(t *testing.T) {
	_, err := InitializeOTel(config.TelemetryConfig{
		EnableTracing: true,
		TraceExporter: "otlp",
	}, discardLogger())
	assert.Error(t, err)
}
