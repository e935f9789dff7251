// Package dataprocessing turns a movie metadata CSV into the total revenue by
// genre summary. It is a pure data pipeline and knows nothing about charts or
// report files.
//
// # Data Flow
//
//	CSV file → CSVLoader → []RawRecord → Normalizer → []MovieRecord → Aggregator → []GenreRevenueSummary
//
// # Normalization
//
// The literal "NA" means absent and becomes an empty domain.Optional. Numeric
// columns never fail: empty, non-numeric and non-finite values become 0, which
// the aggregation filter then excludes. release_date must match YYYY-MM-DD;
// anything else leaves both the date and the derived release year absent.
// genres and production_countries are JSON arrays; a malformed value returns a
// *FieldParseError and aborts the whole batch.
//
// # Aggregation
//
// A record is kept when its release year lies strictly inside the configured
// window (2000 through 2009 by default), revenue and budget are positive, and
// both genre and title are present. Revenue is summed per exact genre value
// and the summaries are ordered by revenue descending, then genre ascending.
//
// # Usage
//
//	raws, err := dataprocessing.NewCSVLoader(logger).Load(ctx, "data/movies.csv")
//	records, err := dataprocessing.NewNormalizer(logger).NormalizeAll(ctx, raws)
//	summaries := dataprocessing.NewAggregator(logger, dataprocessing.DefaultAggregatorConfig()).
//	    Summarize(ctx, records)
package dataprocessing
