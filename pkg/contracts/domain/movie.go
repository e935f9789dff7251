package domain

import (
	"time"
)

// RawRecord is one CSV row keyed by header name. Values are untyped strings
// exactly as they appear in the source file.
type RawRecord map[string]string

// MovieRecord is the normalized, strongly typed form of a RawRecord.
// It is built once by the normalizer and never mutated afterwards.
type MovieRecord struct {
	ID               int64            `json:"id"`
	Title            Optional[string] `json:"title"`
	Genre            Optional[string] `json:"genre"`
	Genres           []string         `json:"genres"`
	Homepage         Optional[string] `json:"homepage"`
	ImdbID           Optional[string] `json:"imdb_id"`
	OriginalLanguage Optional[string] `json:"original_language"`
	Overview         Optional[string] `json:"overview"`
	PosterPath       Optional[string] `json:"poster_path"`
	Tagline          Optional[string] `json:"tagline"`

	Budget      float64 `json:"budget"`
	Revenue     float64 `json:"revenue"`
	Runtime     float64 `json:"runtime"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   float64 `json:"vote_count"`

	// ProductionCountries is passed through from the source JSON unchanged.
	ProductionCountries []map[string]any `json:"production_countries"`

	ReleaseDate Optional[time.Time] `json:"release_date"`
	// ReleaseYear is absent whenever ReleaseDate is absent.
	ReleaseYear Optional[int] `json:"release_year"`
}

// GenreRevenueSummary is the total revenue of one genre within an analysis run.
type GenreRevenueSummary struct {
	Genre   string  `json:"genre" csv:"Genre" validate:"required"`
	Revenue float64 `json:"revenue" csv:"Revenue" validate:"min=0"`
}
