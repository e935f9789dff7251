package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// MoviesHeader is the column order of the movie metadata CSV.
var MoviesHeader = []string{
	"id", "title", "genre", "genres", "budget", "revenue", "runtime", "release_date",
	"popularity", "vote_average", "vote_count", "homepage", "imdb_id",
	"original_language", "overview", "poster_path", "tagline", "production_countries",
}

// MovieRow is one row of a movies fixture. Columns left empty are written
// as the "NA" sentinel, except the JSON columns which default to "[]".
type MovieRow struct {
	ID          string
	Title       string
	Genre       string
	Genres      string
	Budget      string
	Revenue     string
	Runtime     string
	ReleaseDate string
}

func (m MovieRow) record() []string {
	na := func(s string) string {
		if s == "" {
			return "NA"
		}
		return s
	}
	genres := m.Genres
	if genres == "" {
		genres = "[]"
	}
	return []string{
		na(m.ID), na(m.Title), na(m.Genre), genres, na(m.Budget), na(m.Revenue),
		na(m.Runtime), na(m.ReleaseDate), "0", "0", "0", "NA", "NA", "en", "NA", "NA", "NA", "[]",
	}
}

// WriteMoviesCSV writes rows under the standard header into a temporary
// directory and returns the file path.
func WriteMoviesCSV(t *testing.T, rows ...MovieRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "movies.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(MoviesHeader); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, row := range rows {
		if err := w.Write(row.record()); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush fixture: %v", err)
	}
	return path
}
