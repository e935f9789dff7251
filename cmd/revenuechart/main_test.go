package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviecli/internal/config"
)

func dataset(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "internal", "dataprocessing", "testdata", "movies.csv"))
	require.NoError(t, err)
	return path
}

func TestRun(t *testing.T) {
	t.Setenv("MOVIECLI_PATHS_BASE_DIR", t.TempDir())
	t.Setenv("MOVIECLI_LOGGING_LEVEL", "error")
	out := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-in", dataset(t), "-out", out, "-formats", "csv,png"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "Total Revenue by Genre in $US")
	assert.Contains(t, stdout.String(), "Adventure")
	assert.True(t, config.FileExists(filepath.Join(out, config.GenreRevenueCSVName)))
	assert.True(t, config.FileExists(filepath.Join(out, config.GenreRevenueChartName)))
	assert.False(t, config.FileExists(filepath.Join(out, config.GenreRevenueXLSXName)))
}

func TestRun_Errors(t *testing.T) {
	t.Setenv("MOVIECLI_PATHS_BASE_DIR", t.TempDir())
	t.Setenv("MOVIECLI_LOGGING_LEVEL", "error")

	tests := []struct {
		name     string
		args     []string
		expected int
	}{
		{"unknown flag", []string{"-bogus"}, 2},
		{"unknown format", []string{"-formats", "svg"}, 1},
		{"missing input", []string{"-in", "missing.csv"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.expected, run(tt.args, &stdout, &stderr))
			assert.NotEmpty(t, stderr.String())
			assert.Empty(t, stdout.String())
		})
	}
}
