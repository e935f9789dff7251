package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"moviecli/internal/chart"
	"moviecli/internal/config"
	"moviecli/internal/dataprocessing"
	"moviecli/internal/exporter"
	"moviecli/internal/infrastructure"
	"moviecli/pkg/contracts/domain"
)

// AnalysisResult is the outcome of one load -> normalize -> aggregate run.
type AnalysisResult struct {
	RunID           string                       `json:"run_id"`
	SourcePath      string                       `json:"source"`
	GeneratedAt     time.Time                    `json:"generated_at"`
	TotalRecords    int                          `json:"total_records"`
	AnalyzedRecords int                          `json:"analyzed_records"`
	Window          exporter.Window              `json:"window"`
	Summaries       []domain.GenreRevenueSummary `json:"summaries"`

	// Records holds every normalized record of the run, in source order.
	Records []domain.MovieRecord `json:"-"`
}

// Report converts the result to its JSON report document.
func (r *AnalysisResult) Report() exporter.Report {
	return exporter.NewReport(r.RunID, r.SourcePath, r.GeneratedAt, r.Window, r.Summaries)
}

// Sample returns the first n normalized records. n is clamped to the number
// of records available.
func (r *AnalysisResult) Sample(n int) []domain.MovieRecord {
	if n > len(r.Records) {
		n = len(r.Records)
	}
	if n < 0 {
		n = 0
	}
	return r.Records[:n]
}

// AnalysisService runs the revenue-by-genre pipeline and publishes its reports.
type AnalysisService struct {
	inputPath  string
	sampleSize int
	window     dataprocessing.AggregatorConfig

	loader     *dataprocessing.CSVLoader
	normalizer *dataprocessing.Normalizer
	aggregator *dataprocessing.Aggregator
	exporter   *exporter.ReportExporter
	chart      chart.BarChart

	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
	logger  *slog.Logger
	now     func() time.Time

	mu     sync.RWMutex
	latest *AnalysisResult
}

// NewAnalysisService creates an analysis service from configuration.
// A nil providers value disables tracing and metrics.
func NewAnalysisService(cfg config.AnalysisConfig, paths *config.Paths, providers *infrastructure.OTelProviders, logger *slog.Logger) (*AnalysisService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if paths == nil {
		return nil, fmt.Errorf("%w: paths are required", ErrInvalidInput)
	}
	if providers == nil {
		providers = infrastructure.NoopProviders(logger)
	}

	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	window := dataprocessing.AggregatorConfig{
		MinYearExclusive: cfg.MinYearExclusive,
		MaxYearExclusive: cfg.MaxYearExclusive,
	}
	sampleSize := cfg.SampleSize
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	logger = infrastructure.WithComponent(logger, "analysis_service")
	logger.Info("AnalysisService initialized",
		slog.String("input", paths.MoviesCSV),
		slog.String("reports_dir", paths.ReportsDir),
		slog.Int("min_year_exclusive", window.MinYearExclusive),
		slog.Int("max_year_exclusive", window.MaxYearExclusive))

	return &AnalysisService{
		inputPath:  paths.MoviesCSV,
		sampleSize: sampleSize,
		window:     window,
		loader:     dataprocessing.NewCSVLoader(logger),
		normalizer: dataprocessing.NewNormalizer(logger),
		aggregator: dataprocessing.NewAggregator(logger, window),
		exporter:   exporter.NewReportExporter(paths, logger),
		chart:      chart.DefaultBarChart().WithWindow(window.MinYearExclusive, window.MaxYearExclusive),
		tracer:     providers.Tracer,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// InputPath is the dataset read when Analyze is given an empty path.
func (s *AnalysisService) InputPath() string {
	return s.inputPath
}

// Chart returns the chart layout used for PNG and text rendering.
func (s *AnalysisService) Chart() chart.BarChart {
	return s.chart
}

// Exporter returns the report exporter.
func (s *AnalysisService) Exporter() *exporter.ReportExporter {
	return s.exporter
}

// Analyze loads the dataset at path (the configured input when empty),
// normalizes every row and summarizes revenue per genre. The whole batch
// fails on the first malformed row.
func (s *AnalysisService) Analyze(ctx context.Context, path string) (result *AnalysisResult, err error) {
	if path == "" {
		path = s.inputPath
	}
	ctx = infrastructure.EnsureTraceID(ctx)
	logger := s.logger.With(slog.String("source", path))
	start := time.Now()

	var loaded, analyzed int
	defer func() {
		infrastructure.RecordAnalysis(ctx, s.metrics, path, loaded, analyzed, time.Since(start), err)
	}()

	logger.InfoContext(ctx, "Analysis started")

	records, err := s.loadRecords(ctx, path)
	if err != nil {
		logger.ErrorContext(ctx, "Analysis failed", slog.String("error", err.Error()))
		return nil, err
	}
	loaded = len(records)

	aggCtx, span := s.tracer.Start(ctx, "analysis.aggregate")
	summaries, analyzed := s.aggregator.Aggregate(aggCtx, records)
	span.SetAttributes(
		attribute.Int("records.analyzed", analyzed),
		attribute.Int("genres", len(summaries)),
	)
	span.End()

	result = &AnalysisResult{
		RunID:           uuid.New().String(),
		SourcePath:      path,
		GeneratedAt:     s.now().UTC(),
		TotalRecords:    loaded,
		AnalyzedRecords: analyzed,
		Window: exporter.Window{
			MinYearExclusive: s.window.MinYearExclusive,
			MaxYearExclusive: s.window.MaxYearExclusive,
		},
		Summaries: summaries,
		Records:   records,
	}

	s.mu.Lock()
	s.latest = result
	s.mu.Unlock()

	logger.InfoContext(ctx, "Analysis completed",
		slog.String("run_id", result.RunID),
		slog.Int("total_records", loaded),
		slog.Int("analyzed_records", analyzed),
		slog.Int("genres", len(summaries)),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

// Sample returns the first n normalized records of the dataset at path.
// n <= 0 selects the configured sample size.
func (s *AnalysisService) Sample(ctx context.Context, path string, n int) ([]domain.MovieRecord, error) {
	if path == "" {
		path = s.inputPath
	}
	if n <= 0 {
		n = s.sampleSize
	}

	records, err := s.loadRecords(infrastructure.EnsureTraceID(ctx), path)
	if err != nil {
		return nil, err
	}
	if n > len(records) {
		n = len(records)
	}
	return records[:n], nil
}

// Latest returns the most recent successful result, if any.
func (s *AnalysisService) Latest() (*AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}

// Publish writes result in every requested format concurrently and returns
// the path written for each. The first failure cancels the remaining writes.
func (s *AnalysisService) Publish(ctx context.Context, result *AnalysisResult, formats []exporter.Format) (map[exporter.Format]string, error) {
	if result == nil {
		return nil, ErrNoResult
	}
	for _, f := range formats {
		if !f.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
		}
	}

	ctx, span := s.tracer.Start(ctx, "analysis.publish", trace.WithAttributes(
		attribute.String("run_id", result.RunID),
		attribute.Int("formats", len(formats)),
	))
	defer span.End()

	var mu sync.Mutex
	written := make(map[exporter.Format]string, len(formats))

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		format := format
		g.Go(func() error {
			path, err := s.publishOne(gctx, result, format)
			if err != nil {
				return fmt.Errorf("publish %s: %w", format, err)
			}
			mu.Lock()
			written[format] = path
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "Publishing failed",
			slog.String("run_id", result.RunID),
			slog.String("error", err.Error()))
		return written, err
	}

	s.logger.InfoContext(ctx, "Reports published",
		slog.String("run_id", result.RunID),
		slog.Int("files", len(written)))
	return written, nil
}

// RenderChart draws result with the renderer for format ("png" or "text").
func (s *AnalysisService) RenderChart(w io.Writer, result *AnalysisResult, format string) error {
	if result == nil {
		return ErrNoResult
	}
	renderer, err := chart.NewRenderer(format, s.chart)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return renderer.Render(w, result.Summaries)
}

func (s *AnalysisService) publishOne(ctx context.Context, result *AnalysisResult, format exporter.Format) (string, error) {
	switch format {
	case exporter.FormatCSV:
		return s.exporter.WriteCSV(ctx, result.Summaries)
	case exporter.FormatJSON:
		return s.exporter.WriteJSON(ctx, result.Report())
	case exporter.FormatXLSX:
		return s.exporter.WriteXLSX(ctx, result.Summaries, s.chart.Subtitle)
	case exporter.FormatPNG:
		renderer := chart.NewPNGRenderer(s.chart)
		return s.exporter.WriteWith(ctx, format, func(w io.Writer) error {
			return renderer.Render(w, result.Summaries)
		})
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// loadRecords reads and normalizes the dataset at path under the load and
// normalize spans.
func (s *AnalysisService) loadRecords(ctx context.Context, path string) ([]domain.MovieRecord, error) {
	loadCtx, loadSpan := s.tracer.Start(ctx, "analysis.load", trace.WithAttributes(
		attribute.String("source", path),
	))
	raws, err := s.loader.Load(loadCtx, path)
	if err != nil {
		loadSpan.RecordError(err)
		loadSpan.SetStatus(codes.Error, err.Error())
		loadSpan.End()
		return nil, err
	}
	loadSpan.SetAttributes(attribute.Int("records.loaded", len(raws)))
	loadSpan.End()

	normCtx, normSpan := s.tracer.Start(ctx, "analysis.normalize")
	defer normSpan.End()
	records, err := s.normalizer.NormalizeAll(normCtx, raws)
	if err != nil {
		normSpan.RecordError(err)
		normSpan.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return records, nil
}
