// Package services implements the business logic layer of moviecli.
// It sits between the commands and HTTP handlers on one side and the
// dataprocessing, chart and exporter packages on the other.
//
// # AnalysisService
//
// AnalysisService runs the revenue-by-genre pipeline:
//
//	load (CSV) -> normalize (every row, fail fast) -> filter (release window) -> summarize
//
// Each stage runs under its own span (analysis.load, analysis.normalize,
// analysis.aggregate) and every run is recorded in the pipeline metrics.
// The most recent successful result is kept so read-only surfaces can serve
// it without reloading the dataset.
//
//	svc, err := services.NewAnalysisService(cfg.Analysis, paths, providers, logger)
//	result, err := svc.Analyze(ctx, "")
//	written, err := svc.Publish(ctx, result, exporter.AllFormats)
//
// Publish writes the requested formats concurrently with an errgroup; the
// first failure cancels the other writers.
//
// # HealthService
//
// HealthService answers liveness and readiness probes. Readiness requires a
// readable dataset and a computed analysis result.
package services
