package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviecli/internal/config"
	"moviecli/internal/dataprocessing"
	apperrors "moviecli/internal/errors"
	"moviecli/internal/shared/testutil"
	"moviecli/pkg/contracts/domain"
)

func TestAnalysisService_Analyze_LogsCompletion(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	svc, err := NewAnalysisService(config.Default().Analysis, newTestPaths(t), nil, logger)
	require.NoError(t, err)

	result, err := svc.Analyze(context.Background(), "")
	require.NoError(t, err)

	testutil.AssertNoErrors(t, handler)
	rec, ok := handler.Find("Analysis completed")
	require.True(t, ok)
	assert.Equal(t, result.RunID, rec.Attrs["run_id"])
	assert.Equal(t, int64(3), rec.Attrs["analyzed_records"])
	assert.Equal(t, "analysis_service", rec.Attrs["component"])

	agg, ok := handler.Find("aggregated genre revenue")
	require.True(t, ok)
	assert.Equal(t, int64(5), agg.Attrs["input_records"])
	assert.Equal(t, int64(3), agg.Attrs["kept_records"])
}

func TestAnalysisService_Analyze_MalformedRowAbortsBatch(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	paths := newTestPaths(t)
	paths.MoviesCSV = testutil.WriteMoviesCSV(t,
		testutil.MovieRow{ID: "1", Title: "Kept", Genres: `[{"id": 18, "name": "Drama"}]`, Revenue: "100", ReleaseDate: "2005-01-01"},
		testutil.MovieRow{ID: "2", Title: "Broken", Genres: "not json", Revenue: "200", ReleaseDate: "2005-01-01"},
		testutil.MovieRow{ID: "3", Title: "Never read", Revenue: "300", ReleaseDate: "2005-01-01"},
	)

	svc, err := NewAnalysisService(config.Default().Analysis, paths, nil, logger)
	require.NoError(t, err)

	_, err = svc.Analyze(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, dataprocessing.ErrMalformedStructuredField)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
	assert.Equal(t, 2, appErr.Context["row"])

	testutil.AssertLogContains(t, handler, slog.LevelError, "Analysis failed")
	_, ok := svc.Latest()
	assert.False(t, ok)
}

func TestAnalysisService_Analyze_KeepsOnlyCompleteRecordsInWindow(t *testing.T) {
	paths := newTestPaths(t)
	paths.MoviesCSV = testutil.WriteMoviesCSV(t,
		testutil.MovieRow{ID: "1", Title: "A", Genre: "Drama", Budget: "10", Revenue: "50", ReleaseDate: "2003-05-01"},
		testutil.MovieRow{ID: "2", Title: "B", Genre: "Drama", Budget: "10", ReleaseDate: "2004-05-01"},
		testutil.MovieRow{ID: "3", Title: "C", Genre: "Drama", Budget: "10", Revenue: "999"},
		testutil.MovieRow{ID: "4", Title: "D", Genre: "Comedy", Budget: "abc", Revenue: "70", ReleaseDate: "2005-05-01"},
		testutil.MovieRow{ID: "5", Title: "E", Genre: "Comedy", Budget: "5", Revenue: "70", ReleaseDate: "2005-05-01"},
		testutil.MovieRow{ID: "6", Genre: "Comedy", Budget: "5", Revenue: "70", ReleaseDate: "2005-05-01"},
	)

	svc, err := NewAnalysisService(config.Default().Analysis, paths, nil, nil)
	require.NoError(t, err)

	result, err := svc.Analyze(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 6, result.TotalRecords)
	assert.Equal(t, 2, result.AnalyzedRecords)
	assert.Equal(t, []domain.GenreRevenueSummary{
		{Genre: "Comedy", Revenue: 70},
		{Genre: "Drama", Revenue: 50},
	}, result.Summaries)
}
