package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Setenv("MOVIECLI_PATHS_BASE_DIR", t.TempDir())
	t.Setenv("MOVIECLI_LOGGING_LEVEL", "error")
	dataset, err := filepath.Abs(filepath.Join("..", "..", "internal", "dataprocessing", "testdata", "movies.csv"))
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-in", dataset, "-n", "3"}, &stdout, &stderr), stderr.String())

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &records))
	require.Len(t, records, 3)
	assert.Equal(t, float64(19995), records[0]["id"])
	assert.Equal(t, []interface{}{"Action", "Adventure"}, records[0]["genres"])
	assert.Nil(t, records[1]["homepage"])
}

func TestRun_NegativeCount(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-n", "-1"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "must not be negative")
}
