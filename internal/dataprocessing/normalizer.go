package dataprocessing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "moviecli/internal/errors"
	"moviecli/pkg/contracts/domain"
)

const (
	// MissingValue is the literal the source data uses for an absent value.
	MissingValue = "NA"

	// ReleaseDateLayout is the only accepted release_date format.
	ReleaseDateLayout = "2006-01-02"
)

// Column names read by the normalizer.
const (
	ColumnID                  = "id"
	ColumnTitle               = "title"
	ColumnGenre               = "genre"
	ColumnGenres              = "genres"
	ColumnBudget              = "budget"
	ColumnRevenue             = "revenue"
	ColumnRuntime             = "runtime"
	ColumnPopularity          = "popularity"
	ColumnVoteAverage         = "vote_average"
	ColumnVoteCount           = "vote_count"
	ColumnReleaseDate         = "release_date"
	ColumnHomepage            = "homepage"
	ColumnImdbID              = "imdb_id"
	ColumnOriginalLanguage    = "original_language"
	ColumnOverview            = "overview"
	ColumnPosterPath          = "poster_path"
	ColumnTagline             = "tagline"
	ColumnProductionCountries = "production_countries"
)

// RequiredColumns must all be present in the input header.
var RequiredColumns = []string{
	ColumnID,
	ColumnTitle,
	ColumnGenre,
	ColumnGenres,
	ColumnBudget,
	ColumnRevenue,
	ColumnRuntime,
	ColumnReleaseDate,
}

// Normalize converts one raw row into a MovieRecord. It has no side effects.
//
// "NA" becomes an absent value, unparseable numbers become 0 and an
// unparseable release date leaves both ReleaseDate and ReleaseYear absent.
// The only failure is a malformed genres or production_countries field.
func Normalize(raw domain.RawRecord) (domain.MovieRecord, error) {
	genres, err := parseGenres(raw[ColumnGenres])
	if err != nil {
		return domain.MovieRecord{}, err
	}

	var countries []map[string]any
	if value, ok := raw[ColumnProductionCountries]; ok {
		if countries, err = parseProductionCountries(value); err != nil {
			return domain.MovieRecord{}, err
		}
	}

	rec := domain.MovieRecord{
		ID:                  coerceID(raw[ColumnID]),
		Title:               optionalString(raw, ColumnTitle),
		Genre:               optionalString(raw, ColumnGenre),
		Genres:              genres,
		Homepage:            optionalString(raw, ColumnHomepage),
		ImdbID:              optionalString(raw, ColumnImdbID),
		OriginalLanguage:    optionalString(raw, ColumnOriginalLanguage),
		Overview:            optionalString(raw, ColumnOverview),
		PosterPath:          optionalString(raw, ColumnPosterPath),
		Tagline:             optionalString(raw, ColumnTagline),
		Budget:              coerceNumber(raw[ColumnBudget]),
		Revenue:             coerceNumber(raw[ColumnRevenue]),
		Runtime:             coerceNumber(raw[ColumnRuntime]),
		Popularity:          coerceNumber(raw[ColumnPopularity]),
		VoteAverage:         coerceNumber(raw[ColumnVoteAverage]),
		VoteCount:           coerceNumber(raw[ColumnVoteCount]),
		ProductionCountries: countries,
	}

	if date, ok := parseReleaseDate(raw[ColumnReleaseDate]); ok {
		rec.ReleaseDate = domain.Some(date)
		rec.ReleaseYear = domain.Some(date.Year())
	}

	return rec, nil
}

// Normalizer normalizes whole batches and logs the outcome.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// NormalizeAll normalizes every row eagerly. The first malformed row aborts the
// batch and no records are returned; the error is a PARSING AppError carrying
// the 1-based data row and field name, and still matches
// ErrMalformedStructuredField.
func (n *Normalizer) NormalizeAll(ctx context.Context, raws []domain.RawRecord) ([]domain.MovieRecord, error) {
	records := make([]domain.MovieRecord, 0, len(raws))
	withDate := 0

	for i, raw := range raws {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := Normalize(raw)
		if err != nil {
			row := i + 1
			appErr := apperrors.NewParsingError(fmt.Sprintf("failed to normalize row %d", row), err).
				WithContext("row", row)
			var fe *FieldParseError
			if errors.As(err, &fe) {
				appErr = appErr.WithContext("field", fe.Field)
			}
			n.logger.ErrorContext(ctx, "normalization aborted",
				slog.Int("row", row),
				slog.String("error", err.Error()))
			return nil, appErr
		}

		if rec.ReleaseYear.IsPresent() {
			withDate++
		}
		records = append(records, rec)
	}

	n.logger.DebugContext(ctx, "normalized records",
		slog.Int("records", len(records)),
		slog.Int("without_release_date", len(records)-withDate))

	return records, nil
}

func optionalString(raw domain.RawRecord, column string) domain.Optional[string] {
	value, ok := raw[column]
	if !ok || value == MissingValue {
		return domain.None[string]()
	}
	return domain.Some(value)
}

// coerceNumber never fails: empty, non-numeric and non-finite input yield 0.
func coerceNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// coerceID truncates the coerced number to an integer id. Values outside the
// int64 range yield 0.
func coerceID(s string) int64 {
	f := coerceNumber(s)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}

func parseReleaseDate(s string) (time.Time, bool) {
	if s == "" || s == MissingValue {
		return time.Time{}, false
	}
	t, err := time.Parse(ReleaseDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type namedEntry struct {
	Name *string `json:"name"`
}

// parseGenres extracts the name of each object. Objects without a name are skipped.
func parseGenres(s string) ([]string, error) {
	var entries []namedEntry
	if err := json.Unmarshal([]byte(s), &entries); err != nil {
		return nil, &FieldParseError{Field: ColumnGenres, Value: s, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name != nil {
			names = append(names, *e.Name)
		}
	}
	return names, nil
}

func parseProductionCountries(s string) ([]map[string]any, error) {
	var countries []map[string]any
	if err := json.Unmarshal([]byte(s), &countries); err != nil {
		return nil, &FieldParseError{Field: ColumnProductionCountries, Value: s, Err: err}
	}
	return countries, nil
}
