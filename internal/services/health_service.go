package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"moviecli/internal/config"
	"moviecli/internal/files"
	"moviecli/pkg/contracts"
)

// ResultSource exposes the latest analysis result. *AnalysisService
// satisfies it.
type ResultSource interface {
	Latest() (*AnalysisResult, bool)
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	paths     *config.Paths
	results   ResultSource
	discovery *files.Discovery
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// NewHealthService creates a new health service. results may be nil, in
// which case readiness only looks at the dataset.
func NewHealthService(paths *config.Paths, results ResultSource, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", contracts.Version))

	hs := &HealthService{
		version:   contracts.Version,
		paths:     paths,
		results:   results,
		startTime: time.Now(),
		logger:    logger,
	}
	if paths != nil {
		hs.discovery = files.NewDiscovery(paths.BaseDir)
	}
	return hs
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck reports ready once the dataset is readable and an analysis
// result has been computed.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]interface{}),
	}

	status.Services["dataset"] = hs.checkDatasetHealth()
	status.Services["analysis"] = hs.checkAnalysisHealth()
	status.Services["reports"] = hs.checkReportsHealth(ctx)

	for _, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	return map[string]interface{}{
		"version":      hs.version,
		"data_format":  contracts.DataFormatVersion,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
}

func (hs *HealthService) checkDatasetHealth() ServiceHealth {
	if hs.paths == nil {
		return ServiceHealth{Status: "not_ready", Message: "paths not configured"}
	}

	info, err := os.Stat(hs.paths.MoviesCSV)
	if err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Dataset not readable: %v", err),
		}
	}

	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%s (%s)", hs.paths.MoviesCSV, humanize.Bytes(uint64(info.Size()))),
	}
}

func (hs *HealthService) checkAnalysisHealth() ServiceHealth {
	if hs.results == nil {
		return ServiceHealth{Status: "not_ready", Message: "analysis service not initialized"}
	}

	result, ok := hs.results.Latest()
	if !ok {
		return ServiceHealth{Status: "not_ready", Message: "no analysis result yet"}
	}

	return ServiceHealth{
		Status: "ready",
		Message: fmt.Sprintf("%d genres from %d of %d records",
			len(result.Summaries), result.AnalyzedRecords, result.TotalRecords),
		Uptime: humanize.Time(result.GeneratedAt),
	}
}

// checkReportsHealth describes previously published reports. Having none is
// not a readiness failure.
func (hs *HealthService) checkReportsHealth(ctx context.Context) ServiceHealth {
	if hs.discovery == nil {
		return ServiceHealth{Status: "ready", Message: "no reports directory"}
	}

	reports, err := hs.discovery.FindReports(hs.paths.ReportsDir)
	if err != nil {
		hs.logger.WarnContext(ctx, "Report discovery failed", slog.String("error", err.Error()))
		return ServiceHealth{Status: "not_ready", Message: err.Error()}
	}

	latest, ok := files.GetLatestFile(reports)
	if !ok {
		return ServiceHealth{Status: "ready", Message: "no reports published"}
	}

	return ServiceHealth{
		Status: "ready",
		Message: fmt.Sprintf("%d reports (%s), latest %s",
			len(reports), humanize.Bytes(uint64(files.TotalSize(reports))), latest.Name),
		Uptime: humanize.Time(latest.ModTime),
	}
}
