package services

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"moviecli/internal/config"
	apperrors "moviecli/internal/errors"
	"moviecli/internal/exporter"
	"moviecli/internal/infrastructure"
	"moviecli/pkg/contracts/domain"
)

func newTestPaths(t *testing.T) *config.Paths {
	t.Helper()
	paths, err := config.NewPaths(t.TempDir())
	require.NoError(t, err)

	dataset, err := filepath.Abs(filepath.Join("testdata", "movies.csv"))
	require.NoError(t, err)
	paths.MoviesCSV = dataset
	return paths
}

func newTestService(t *testing.T, providers *infrastructure.OTelProviders) (*AnalysisService, *config.Paths) {
	t.Helper()
	paths := newTestPaths(t)
	svc, err := NewAnalysisService(config.Default().Analysis, paths, providers, nil)
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC) }
	return svc, paths
}

func TestNewAnalysisService_RequiresPaths(t *testing.T) {
	_, err := NewAnalysisService(config.Default().Analysis, nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalysisService_Analyze(t *testing.T) {
	svc, paths := newTestService(t, nil)

	_, ok := svc.Latest()
	assert.False(t, ok)

	result, err := svc.Analyze(context.Background(), "")
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, paths.MoviesCSV, result.SourcePath)
	assert.Equal(t, time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC), result.GeneratedAt)
	assert.Equal(t, 5, result.TotalRecords)
	assert.Equal(t, 3, result.AnalyzedRecords)
	assert.Equal(t, exporter.Window{MinYearExclusive: 1999, MaxYearExclusive: 2010}, result.Window)
	assert.Equal(t, []domain.GenreRevenueSummary{
		{Genre: "Action", Revenue: 2787965087},
		{Genre: "Adventure", Revenue: 961000000},
		{Genre: "Drama", Revenue: 108846072},
	}, result.Summaries)
	assert.Len(t, result.Records, 5)

	latest, ok := svc.Latest()
	require.True(t, ok)
	assert.Same(t, result, latest)
}

func TestAnalysisService_Analyze_MissingFile(t *testing.T) {
	svc, paths := newTestService(t, nil)

	_, err := svc.Analyze(context.Background(), filepath.Join(paths.BaseDir, "nope.csv"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)

	_, ok := svc.Latest()
	assert.False(t, ok, "failed runs do not replace the latest result")
}

func TestAnalysisService_Analyze_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	providers := infrastructure.NoopProviders(nil)
	providers.Tracer = tp.Tracer("test")

	svc, _ := newTestService(t, providers)
	result, err := svc.Analyze(context.Background(), "")
	require.NoError(t, err)

	_, err = svc.Publish(context.Background(), result, []exporter.Format{exporter.FormatCSV})
	require.NoError(t, err)

	var names []string
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.ElementsMatch(t, []string{
		"analysis.load", "analysis.normalize", "analysis.aggregate", "analysis.publish",
	}, names)
}

func TestAnalysisService_Sample(t *testing.T) {
	svc, _ := newTestService(t, nil)

	tests := []struct {
		name     string
		n        int
		expected []int64
	}{
		{"default size", 0, []int64{19995, 285}},
		{"explicit", 3, []int64{19995, 285, 206647}},
		{"clamped", 50, []int64{19995, 285, 206647, 9999, 1865}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := svc.Sample(context.Background(), "", tt.n)
			require.NoError(t, err)

			ids := make([]int64, 0, len(records))
			for _, r := range records {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestAnalysisResult_Sample(t *testing.T) {
	result := &AnalysisResult{Records: []domain.MovieRecord{{ID: 1}, {ID: 2}}}

	assert.Len(t, result.Sample(1), 1)
	assert.Len(t, result.Sample(5), 2)
	assert.Empty(t, result.Sample(-1))
}

func TestAnalysisService_Publish(t *testing.T) {
	svc, paths := newTestService(t, nil)

	result, err := svc.Analyze(context.Background(), "")
	require.NoError(t, err)

	written, err := svc.Publish(context.Background(), result, exporter.AllFormats)
	require.NoError(t, err)

	assert.Equal(t, map[exporter.Format]string{
		exporter.FormatCSV:  paths.GenreRevenueCSV,
		exporter.FormatJSON: paths.GenreRevenueJSON,
		exporter.FormatXLSX: paths.GenreRevenueXLSX,
		exporter.FormatPNG:  paths.GenreRevenueChart,
	}, written)
	for _, path := range written {
		assert.True(t, config.FileExists(path), path)
	}
}

func TestAnalysisService_Publish_Errors(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Publish(context.Background(), nil, exporter.AllFormats)
	assert.ErrorIs(t, err, ErrNoResult)

	_, err = svc.Publish(context.Background(), &AnalysisResult{}, []exporter.Format{"svg"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Publish(ctx, &AnalysisResult{}, []exporter.Format{exporter.FormatJSON})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalysisService_RenderChart(t *testing.T) {
	svc, _ := newTestService(t, nil)

	result, err := svc.Analyze(context.Background(), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.RenderChart(&buf, result, "text"))
	assert.Contains(t, buf.String(), "Total Revenue by Genre in $US")
	assert.Contains(t, buf.String(), "Films w/ budget and revenue figures, 2000-2009")
	assert.Contains(t, buf.String(), "2,787,965,087")

	buf.Reset()
	require.NoError(t, svc.RenderChart(&buf, result, "png"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.ErrorIs(t, svc.RenderChart(&buf, result, "svg"), ErrUnsupportedFormat)
	assert.ErrorIs(t, svc.RenderChart(&buf, nil, "text"), ErrNoResult)
}
