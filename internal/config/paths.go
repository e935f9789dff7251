package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Well-known file names inside the reports directory.
const (
	MoviesCSVName          = "movies.csv"
	GenreRevenueCSVName    = "genre_revenue.csv"
	GenreRevenueJSONName   = "genre_revenue.json"
	GenreRevenueXLSXName   = "genre_revenue.xlsx"
	GenreRevenueChartName  = "genre_revenue.png"
	DefaultLogFileBaseName = "moviecli.log"
)

// Paths contains all the application paths.
// This is the single source of truth for ALL file paths in the application.
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	LogsDir    string

	// Input dataset
	MoviesCSV string

	// Well-known report files
	GenreRevenueCSV   string
	GenreRevenueJSON  string
	GenreRevenueXLSX  string
	GenreRevenueChart string
}

// NewPaths builds the directory layout below baseDir. An empty baseDir means
// the current working directory.
//
//	<base>/
//	  ├── data/
//	  │   ├── movies.csv
//	  │   └── reports/     (generated summaries and charts)
//	  └── logs/
func NewPaths(baseDir string) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %s: %w", baseDir, err)
	}

	dataDir := filepath.Join(abs, "data")
	reportsDir := filepath.Join(dataDir, "reports")

	return &Paths{
		BaseDir:    abs,
		DataDir:    dataDir,
		ReportsDir: reportsDir,
		LogsDir:    filepath.Join(abs, "logs"),

		MoviesCSV: filepath.Join(dataDir, MoviesCSVName),

		GenreRevenueCSV:   filepath.Join(reportsDir, GenreRevenueCSVName),
		GenreRevenueJSON:  filepath.Join(reportsDir, GenreRevenueJSONName),
		GenreRevenueXLSX:  filepath.Join(reportsDir, GenreRevenueXLSXName),
		GenreRevenueChart: filepath.Join(reportsDir, GenreRevenueChartName),
	}, nil
}

// WithReportsDir returns a copy of p whose report files live in dir.
func (p *Paths) WithReportsDir(dir string) *Paths {
	cp := *p
	cp.ReportsDir = p.Resolve(dir)
	cp.GenreRevenueCSV = filepath.Join(cp.ReportsDir, GenreRevenueCSVName)
	cp.GenreRevenueJSON = filepath.Join(cp.ReportsDir, GenreRevenueJSONName)
	cp.GenreRevenueXLSX = filepath.Join(cp.ReportsDir, GenreRevenueXLSXName)
	cp.GenreRevenueChart = filepath.Join(cp.ReportsDir, GenreRevenueChartName)
	return &cp
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.ReportsDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// Resolve returns path unchanged when absolute, otherwise joined to BaseDir.
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("data", p.DataDir),
			slog.String("reports", p.ReportsDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("files",
			slog.String("movies_csv", p.MoviesCSV),
			slog.Bool("movies_csv_exists", FileExists(p.MoviesCSV)),
			slog.String("genre_revenue_csv", p.GenreRevenueCSV),
			slog.String("genre_revenue_json", p.GenreRevenueJSON),
			slog.String("genre_revenue_xlsx", p.GenreRevenueXLSX),
			slog.String("genre_revenue_chart", p.GenreRevenueChart),
		))
}
