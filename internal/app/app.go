package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"moviecli/internal/config"
	apperrors "moviecli/internal/errors"
	"moviecli/internal/exporter"
	"moviecli/internal/infrastructure"
	"moviecli/internal/middleware"
	"moviecli/internal/services"
	transport "moviecli/internal/transport/http"
	"moviecli/internal/validation"
	"moviecli/pkg/contracts"
)

// Options override configuration values, typically from command-line flags.
// Zero values leave the loaded configuration untouched.
type Options struct {
	ConfigFile string
	InputFile  string
	OutputDir  string
	Formats    []string
	Port       int
}

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.PipelineMetrics
	Analysis      *services.AnalysisService
	Health        *services.HealthService
	Server        *http.Server
}

// New loads configuration, applies opts and wires every component.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := applyOptions(cfg, opts); err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig wires the application from an already validated configuration.
func NewWithConfig(cfg *config.Config) (*Application, error) {
	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", infrastructure.ServiceName),
		slog.String("version", contracts.Version))

	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	if err := validation.NewFileValidator(logger).ValidateOutputDirectory(paths.ReportsDir); err != nil {
		return nil, err
	}

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	analysis, err := services.NewAnalysisService(cfg.Analysis, paths, providers, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analysis service: %w", err)
	}

	return &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: providers,
		Metrics:       metrics,
		Analysis:      analysis,
		Health:        services.NewHealthService(paths, analysis, logger),
	}, nil
}

func applyOptions(cfg *config.Config, opts Options) error {
	if opts.InputFile != "" {
		cfg.Analysis.InputFile = opts.InputFile
	}
	if opts.OutputDir != "" {
		cfg.Output.Dir = opts.OutputDir
	}
	if len(opts.Formats) > 0 {
		formats, err := exporter.ParseFormats(opts.Formats)
		if err != nil {
			return err
		}
		cfg.Output.Formats = cfg.Output.Formats[:0]
		for _, f := range formats {
			cfg.Output.Formats = append(cfg.Output.Formats, string(f))
		}
	}
	if opts.Port != 0 {
		cfg.Server.Port = opts.Port
	}
	return cfg.Validate()
}

// CheckInput verifies the configured dataset is a readable CSV file.
func (a *Application) CheckInput() error {
	path := a.Paths.MoviesCSV
	if err := validation.NewFileValidator(a.Logger).ValidateCSVFile(path); err != nil {
		return apperrors.NewAppValidationError(err.Error()).WithContext("path", path)
	}
	return nil
}

// Formats returns the configured output formats.
func (a *Application) Formats() ([]exporter.Format, error) {
	return exporter.ParseFormats(a.Config.Output.Formats)
}

// RunBatch analyzes the configured dataset, publishes every configured
// format and prints the console chart to out.
func (a *Application) RunBatch(ctx context.Context, out io.Writer) (map[exporter.Format]string, error) {
	if err := a.CheckInput(); err != nil {
		return nil, err
	}

	result, err := a.Analysis.Analyze(ctx, "")
	if err != nil {
		return nil, err
	}

	formats, err := a.Formats()
	if err != nil {
		return nil, err
	}

	written, err := a.Analysis.Publish(ctx, result, formats)
	if err != nil {
		return written, err
	}

	if err := a.Analysis.RenderChart(out, result, "text"); err != nil {
		return written, err
	}

	published := make([]string, 0, len(written))
	for _, path := range written {
		published = append(published, path)
	}
	sort.Strings(published)
	fmt.Fprintln(out)
	for _, path := range published {
		fmt.Fprintf(out, "wrote %s\n", path)
	}

	return written, nil
}

// PrintSample writes the first n normalized records to out as indented JSON.
func (a *Application) PrintSample(ctx context.Context, out io.Writer, n int) error {
	if err := a.CheckInput(); err != nil {
		return err
	}
	records, err := a.Analysis.Sample(ctx, "", n)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Handler builds the HTTP handler serving the analysis result.
func (a *Application) Handler() (http.Handler, error) {
	otelMiddleware, err := middleware.NewOTelMiddleware(a.OTelProviders, a.Metrics)
	if err != nil {
		return nil, err
	}

	rc := transport.RouterConfig{
		Analysis: transport.NewAnalysisHandler(a.Analysis, a.Config.Analysis.SampleSize, a.Logger),
		Health:   transport.NewHealthHandler(a.Health, a.Logger),
		Metrics:  a.OTelProviders.PrometheusHTTP,
		OTel:     otelMiddleware,
		Logger:   a.Logger,
	}
	if rl := a.Config.Server.RateLimit; rl.Enabled {
		rc.RateLimiter = middleware.NewRateLimiter(rl.RPS, rl.Burst, a.Logger)
	}

	return transport.NewRouter(rc), nil
}

// Serve computes the analysis result once, then serves it until ctx is
// cancelled and shuts the server down gracefully.
func (a *Application) Serve(ctx context.Context) error {
	if err := a.CheckInput(); err != nil {
		return err
	}
	if _, err := a.Analysis.Analyze(ctx, ""); err != nil {
		return fmt.Errorf("initial analysis failed: %w", err)
	}

	handler, err := a.Handler()
	if err != nil {
		return err
	}

	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      handler,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.InfoContext(ctx, "HTTP server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return <-errCh
}

// Close flushes telemetry and closes the log file.
func (a *Application) Close(ctx context.Context) error {
	var errs []error
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
