// Package shared holds code used across moviecli packages that belongs to no
// single layer.
//
// testutil provides test helpers: a buffered slog handler for asserting on
// log output, and a writer for small movie CSV fixtures.
package shared
