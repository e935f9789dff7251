package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviecli/internal/exporter"
	"moviecli/pkg/contracts"
)

type staticResults struct {
	result *AnalysisResult
}

func (s staticResults) Latest() (*AnalysisResult, bool) {
	return s.result, s.result != nil
}

func TestHealthService_HealthCheck(t *testing.T) {
	hs := NewHealthService(newTestPaths(t), nil, nil)

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, contracts.Version, status.Version)
	assert.False(t, status.Timestamp.IsZero())
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	tests := []struct {
		name     string
		results  ResultSource
		dataset  string
		expected string
	}{
		{"no analysis service", nil, "", "not_ready"},
		{"no result yet", staticResults{}, "", "not_ready"},
		{"missing dataset", staticResults{result: &AnalysisResult{}}, "missing.csv", "not_ready"},
		{"ready", staticResults{result: &AnalysisResult{TotalRecords: 5}}, "", "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := newTestPaths(t)
			if tt.dataset != "" {
				paths.MoviesCSV = filepath.Join(paths.BaseDir, tt.dataset)
			}

			hs := NewHealthService(paths, tt.results, nil)
			status := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.expected, status.Status)
			assert.Contains(t, status.Services, "dataset")
			assert.Contains(t, status.Services, "analysis")
		})
	}
}

func TestHealthService_ReadyAfterAnalyze(t *testing.T) {
	svc, paths := newTestService(t, nil)
	hs := NewHealthService(paths, svc, nil)

	assert.Equal(t, "not_ready", hs.ReadinessCheck(context.Background()).Status)

	_, err := svc.Analyze(context.Background(), "")
	require.NoError(t, err)

	status := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "ready", status.Status)

	analysis, ok := status.Services["analysis"].(ServiceHealth)
	require.True(t, ok)
	assert.Equal(t, "3 genres from 3 of 5 records", analysis.Message)
}

func TestHealthService_ReportsCheck(t *testing.T) {
	svc, paths := newTestService(t, nil)
	hs := NewHealthService(paths, svc, nil)

	reports, ok := hs.ReadinessCheck(context.Background()).Services["reports"].(ServiceHealth)
	require.True(t, ok)
	assert.Equal(t, "ready", reports.Status)
	assert.Equal(t, "no reports published", reports.Message)

	result, err := svc.Analyze(context.Background(), "")
	require.NoError(t, err)
	_, err = svc.Publish(context.Background(), result, []exporter.Format{exporter.FormatCSV, exporter.FormatJSON})
	require.NoError(t, err)

	reports, ok = hs.ReadinessCheck(context.Background()).Services["reports"].(ServiceHealth)
	require.True(t, ok)
	assert.Equal(t, "ready", reports.Status)
	assert.Contains(t, reports.Message, "2 reports")
}

func TestHealthService_LivenessAndVersion(t *testing.T) {
	hs := NewHealthService(nil, nil, nil)

	live := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", live.Status)
	assert.Contains(t, live.Runtime, "go_version")

	info := hs.Version()
	assert.Equal(t, contracts.Version, info["version"])
	assert.Equal(t, contracts.DataFormatVersion, info["data_format"])
}
