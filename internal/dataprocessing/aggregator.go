package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"moviecli/pkg/contracts/domain"
)

// AggregatorConfig bounds the release window. Both bounds are exclusive.
type AggregatorConfig struct {
	MinYearExclusive int
	MaxYearExclusive int
}

// DefaultAggregatorConfig keeps films released 2000 through 2009.
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		MinYearExclusive: 1999,
		MaxYearExclusive: 2010,
	}
}

// Aggregator reduces normalized records to total revenue per genre.
type Aggregator struct {
	logger *slog.Logger
	config AggregatorConfig
}

// NewAggregator creates an Aggregator for the given release window.
func NewAggregator(logger *slog.Logger, config AggregatorConfig) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		logger: logger,
		config: config,
	}
}

// Config returns the release window in use.
func (a *Aggregator) Config() AggregatorConfig {
	return a.config
}

// Keep reports whether a record belongs to the analysis subset: released
// strictly inside the window, positive revenue and budget, and both genre and
// title present. A record without a release year is never kept.
func (a *Aggregator) Keep(rec domain.MovieRecord) bool {
	year, ok := rec.ReleaseYear.Get()
	if !ok {
		return false
	}
	return year > a.config.MinYearExclusive &&
		year < a.config.MaxYearExclusive &&
		rec.Revenue > 0 &&
		rec.Budget > 0 &&
		rec.Genre.IsPresent() &&
		rec.Title.IsPresent()
}

// Filter returns the records Keep accepts, in input order.
func (a *Aggregator) Filter(records []domain.MovieRecord) []domain.MovieRecord {
	kept := make([]domain.MovieRecord, 0, len(records))
	for _, rec := range records {
		if a.Keep(rec) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// Summarize filters the records, sums revenue per exact genre value and orders
// the result by revenue descending, then genre ascending. The result is never
// nil.
func (a *Aggregator) Summarize(ctx context.Context, records []domain.MovieRecord) []domain.GenreRevenueSummary {
	summaries, _ := a.Aggregate(ctx, records)
	return summaries
}

// Aggregate is Summarize that also reports how many records were kept.
func (a *Aggregator) Aggregate(ctx context.Context, records []domain.MovieRecord) ([]domain.GenreRevenueSummary, int) {
	kept := a.Filter(records)

	totals := make(map[string]float64)
	for _, rec := range kept {
		genre, _ := rec.Genre.Get()
		totals[genre] += rec.Revenue
	}

	summaries := make([]domain.GenreRevenueSummary, 0, len(totals))
	for genre, revenue := range totals {
		summaries = append(summaries, domain.GenreRevenueSummary{Genre: genre, Revenue: revenue})
	}
	SortSummaries(summaries)

	a.logger.InfoContext(ctx, "aggregated genre revenue",
		slog.Int("input_records", len(records)),
		slog.Int("kept_records", len(kept)),
		slog.Int("genres", len(summaries)))

	return summaries, len(kept)
}

// SortSummaries orders summaries by revenue descending, breaking ties by genre
// name ascending.
func SortSummaries(summaries []domain.GenreRevenueSummary) {
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Revenue != summaries[j].Revenue {
			return summaries[i].Revenue > summaries[j].Revenue
		}
		return summaries[i].Genre < summaries[j].Genre
	})
}
