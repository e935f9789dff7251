// Package config provides centralized configuration management for moviecli.
// It handles loading configuration from multiple sources, validation, and
// resolution of every file system location the commands touch.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern MOVIECLI_<SECTION>_<KEY>:
//
//	MOVIECLI_ANALYSIS_INPUT_FILE=data/movies.csv
//	MOVIECLI_ANALYSIS_MIN_YEAR_EXCLUSIVE=1999
//	MOVIECLI_OUTPUT_FORMATS=csv,png
//	MOVIECLI_LOGGING_LEVEL=debug
//	MOVIECLI_SERVER_PORT=8080
//
// # Path Management
//
// Paths is the single source of truth for file locations. Relative paths in
// the configuration are resolved against Paths.BaseDir:
//
//	cfg, err := config.Load("")
//	paths, err := cfg.ResolvePaths()
//	chartPath := paths.GenreRevenueChart
package config
