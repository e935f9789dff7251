package dataprocessing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	apperrors "moviecli/internal/errors"
	"moviecli/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVLoader reads a movie metadata CSV into raw records keyed by header name.
type CSVLoader struct {
	logger   *slog.Logger
	required []string
}

// NewCSVLoader creates a loader that requires RequiredColumns.
func NewCSVLoader(logger *slog.Logger) *CSVLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVLoader{
		logger:   logger,
		required: RequiredColumns,
	}
}

// Load opens path and reads every row.
func (l *CSVLoader) Load(ctx context.Context, path string) ([]domain.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("input file").WithContext("path", path)
		}
		return nil, apperrors.NewStorageError("failed to open input file", err).WithContext("path", path)
	}
	defer file.Close()

	records, err := l.Read(ctx, file)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr.WithContext("path", path)
		}
		return nil, err
	}

	l.logger.InfoContext(ctx, "loaded movie records",
		slog.String("path", path),
		slog.Int("records", len(records)))

	return records, nil
}

// Read parses CSV from r. Field order does not matter; the header must name
// every required column and each data row must have as many fields as the
// header.
func (l *CSVLoader) Read(ctx context.Context, r io.Reader) ([]domain.RawRecord, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewAppValidationError("input has no header row")
		}
		return nil, apperrors.NewParsingError("failed to read header", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	if missing := missingColumns(header, l.required); len(missing) > 0 {
		return nil, apperrors.NewAppValidationError("input is missing required columns").
			WithContext("missing", strings.Join(missing, ","))
	}

	var records []domain.RawRecord
	for row := 1; ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read row %d", row), err).
				WithContext("row", row)
		}

		rec := make(domain.RawRecord, len(header))
		for i, name := range header {
			rec[name] = fields[i]
		}
		records = append(records, rec)
	}

	if records == nil {
		records = []domain.RawRecord{}
	}
	return records, nil
}

func missingColumns(header, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}

	var missing []string
	for _, name := range required {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
