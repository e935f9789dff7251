package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestDiscovery_FindReports(t *testing.T) {
	base := t.TempDir()
	reports := filepath.Join(base, "reports")
	require.NoError(t, os.MkdirAll(filepath.Join(reports, "archive"), 0o755))

	t0 := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	writeFile(t, filepath.Join(reports, "genre_revenue.json"), 20, t0.Add(2*time.Hour))
	writeFile(t, filepath.Join(reports, "genre_revenue.csv"), 10, t0)
	writeFile(t, filepath.Join(reports, "genre_revenue.png"), 30, t0.Add(time.Hour))
	writeFile(t, filepath.Join(reports, ".genre_revenue.csv.tmp123"), 5, t0)
	writeFile(t, filepath.Join(reports, "notes.txt"), 5, t0)

	tests := []struct {
		name string
		dir  string
	}{
		{"relative to base", "reports"},
		{"absolute", reports},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := NewDiscovery(base).FindReports(tt.dir)
			require.NoError(t, err)

			names := make([]string, 0, len(found))
			for _, f := range found {
				names = append(names, f.Name)
			}
			assert.Equal(t, []string{"genre_revenue.csv", "genre_revenue.png", "genre_revenue.json"}, names)
			assert.Equal(t, "png", found[1].Format)
			assert.Equal(t, int64(60), TotalSize(found))

			latest, ok := GetLatestFile(found)
			require.True(t, ok)
			assert.Equal(t, "genre_revenue.json", latest.Name)
		})
	}
}

func TestDiscovery_FindReports_MissingDirectory(t *testing.T) {
	found, err := NewDiscovery(t.TempDir()).FindReports("reports")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, ok := GetLatestFile(found)
	assert.False(t, ok)
}
