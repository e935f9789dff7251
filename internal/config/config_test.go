package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "moviecli/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data/movies.csv", cfg.Analysis.InputFile)
	assert.Equal(t, 1999, cfg.Analysis.MinYearExclusive)
	assert.Equal(t, 2010, cfg.Analysis.MaxYearExclusive)
	assert.Equal(t, 2, cfg.Analysis.SampleSize)
	assert.Equal(t, []string{"csv", "json", "xlsx", "png"}, cfg.Output.Formats)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
analysis:
  input_file: fixtures/movies.csv
  max_year_exclusive: 2015
output:
  formats: [csv, png]
server:
  read_timeout: 5s
logging:
  level: DEBUG
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fixtures/movies.csv", cfg.Analysis.InputFile)
	assert.Equal(t, 1999, cfg.Analysis.MinYearExclusive, "keys absent from the file keep defaults")
	assert.Equal(t, 2015, cfg.Analysis.MaxYearExclusive)
	assert.Equal(t, []string{"csv", "png"}, cfg.Output.Formats)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
analysis:
  min_year_exclusive: 1990
server:
  port: 9000
`)
	t.Setenv("MOVIECLI_ANALYSIS_MIN_YEAR_EXCLUSIVE", "2001")
	t.Setenv("MOVIECLI_SERVER_PORT", "9100")
	t.Setenv("MOVIECLI_OUTPUT_FORMATS", "json, XLSX")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2001, cfg.Analysis.MinYearExclusive)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, []string{"json", "xlsx"}, cfg.Output.Formats)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{
			name:      "inverted year window",
			content:   "analysis:\n  min_year_exclusive: 2010\n  max_year_exclusive: 1999\n",
			wantField: "analysis.max_year_exclusive",
		},
		{
			name:      "unknown output format",
			content:   "output:\n  formats: [svg]\n",
			wantField: "output.formats[0]",
		},
		{
			name:      "bad log output",
			content:   "logging:\n  output: syslog\n",
			wantField: "logging.output",
		},
		{
			name:      "port out of range",
			content:   "server:\n  port: 70000\n",
			wantField: "server.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tt.content))
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
			assert.Contains(t, appErr.Context, tt.wantField)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(writeConfigFile(t, "analysis: [unterminated"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeConfig, appErr.Type)
}

func TestConfig_ResolvePaths(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Paths.BaseDir = base
	cfg.Output.Dir = "out"

	paths, err := cfg.ResolvePaths()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "data", "movies.csv"), paths.MoviesCSV)
	assert.Equal(t, filepath.Join(base, "out"), paths.ReportsDir)
	assert.Equal(t, filepath.Join(base, "out", GenreRevenueChartName), paths.GenreRevenueChart)
	assert.Equal(t, filepath.Join(base, "logs", DefaultLogFileBaseName), cfg.Logging.FilePath)
}
