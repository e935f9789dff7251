package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"moviecli/internal/config"
	apperrors "moviecli/internal/errors"
	"moviecli/pkg/contracts"
	"moviecli/pkg/contracts/domain"
)

const (
	summarySheet = "Genre Revenue"
	chartTitle   = "Total Revenue by Genre in $US"
)

// SummaryHeaders is the header row of the CSV and XLSX reports.
var SummaryHeaders = []string{"Genre", "Revenue"}

// Window is the exclusive release-year window a report was computed for.
type Window struct {
	MinYearExclusive int `json:"min_year_exclusive"`
	MaxYearExclusive int `json:"max_year_exclusive"`
}

// Report is the JSON document describing one analysis run.
type Report struct {
	GeneratedAt time.Time                    `json:"generated_at"`
	RunID       string                       `json:"run_id"`
	Count       int                          `json:"count"`
	Format      string                       `json:"format"`
	Source      string                       `json:"source,omitempty"`
	Window      Window                       `json:"window"`
	Summaries   []domain.GenreRevenueSummary `json:"summaries"`
}

// NewReport builds a Report for summaries. A nil slice is reported as empty.
func NewReport(runID, source string, generatedAt time.Time, window Window, summaries []domain.GenreRevenueSummary) Report {
	if summaries == nil {
		summaries = []domain.GenreRevenueSummary{}
	}
	return Report{
		GeneratedAt: generatedAt.UTC(),
		RunID:       runID,
		Count:       len(summaries),
		Format:      contracts.DataFormatVersion,
		Source:      source,
		Window:      window,
		Summaries:   summaries,
	}
}

// ReportExporter writes revenue-by-genre reports.
type ReportExporter struct {
	paths  *config.Paths
	csv    *CSVWriter
	logger *slog.Logger
}

// NewReportExporter creates an exporter rooted at the reports directory of paths.
func NewReportExporter(paths *config.Paths, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportExporter{
		paths:  paths,
		csv:    NewCSVWriter(paths, logger),
		logger: logger,
	}
}

// Path returns where format is written.
func (e *ReportExporter) Path(format Format) string {
	switch format {
	case FormatCSV:
		return e.paths.GenreRevenueCSV
	case FormatJSON:
		return e.paths.GenreRevenueJSON
	case FormatXLSX:
		return e.paths.GenreRevenueXLSX
	case FormatPNG:
		return e.paths.GenreRevenueChart
	default:
		return e.paths.GetReportPath("genre_revenue." + string(format))
	}
}

// WriteCSV writes the summaries as a BOM-prefixed CSV with a Genre,Revenue header.
func (e *ReportExporter) WriteCSV(ctx context.Context, summaries []domain.GenreRevenueSummary) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := e.Path(FormatCSV)
	if err := e.csv.WriteSimpleCSV(path, SummaryHeaders, summaryRecords(summaries)); err != nil {
		return "", apperrors.NewStorageError("failed to write CSV report", err).WithContext("path", path)
	}
	return path, nil
}

// WriteJSON writes report as indented JSON.
func (e *ReportExporter) WriteJSON(ctx context.Context, report Report) (string, error) {
	path := e.Path(FormatJSON)
	if err := e.writeFile(ctx, path, func(w io.Writer) error { return EncodeJSON(w, report) }); err != nil {
		return "", err
	}
	return path, nil
}

// WriteXLSX writes the summaries to a workbook with a native bar chart.
func (e *ReportExporter) WriteXLSX(ctx context.Context, summaries []domain.GenreRevenueSummary, subtitle string) (string, error) {
	path := e.Path(FormatXLSX)
	if err := e.writeFile(ctx, path, func(w io.Writer) error { return EncodeXLSX(w, summaries, subtitle) }); err != nil {
		return "", err
	}
	return path, nil
}

// WriteWith creates the file for format and hands it to encode. Used for
// artifacts rendered elsewhere, such as the PNG chart.
func (e *ReportExporter) WriteWith(ctx context.Context, format Format, encode func(io.Writer) error) (string, error) {
	path := e.Path(format)
	if err := e.writeFile(ctx, path, encode); err != nil {
		return "", err
	}
	return path, nil
}

func (e *ReportExporter) writeFile(ctx context.Context, path string, encode func(io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := replaceFile(path, encode); err != nil {
		return apperrors.NewStorageError("failed to write report", err).WithContext("path", path)
	}

	e.logger.InfoContext(ctx, "report written", slog.String("path", path))
	return nil
}

// EncodeCSV writes the summaries as CSV to w.
func EncodeCSV(w io.Writer, summaries []domain.GenreRevenueSummary) error {
	return Encode(w, WriteOptions{
		Headers:   SummaryHeaders,
		Records:   summaryRecords(summaries),
		BOMPrefix: true,
	})
}

// EncodeJSON writes report as indented JSON to w.
func EncodeJSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// EncodeXLSX writes a workbook with one summary sheet. When there is data the
// sheet also carries a horizontal bar chart in summary order.
func EncodeXLSX(w io.Writer, summaries []domain.GenreRevenueSummary, subtitle string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(summarySheet, "A1", &[]interface{}{SummaryHeaders[0], SummaryHeaders[1]}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, s := range summaries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &[]interface{}{s.Genre, s.Revenue}); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return err
	}

	lastRow := len(summaries) + 1
	if len(summaries) > 0 {
		// Built-in format 3 is "#,##0".
		moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, "B2", fmt.Sprintf("B%d", lastRow), moneyStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "B", 18); err != nil {
		return err
	}

	if len(summaries) > 0 {
		title := []excelize.RichTextRun{{Text: chartTitle}}
		if subtitle != "" {
			title = append(title, excelize.RichTextRun{Text: "\n" + subtitle})
		}
		if err := f.AddChart(summarySheet, "D2", &excelize.Chart{
			Type: excelize.Bar,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("'%s'!$B$1", summarySheet),
				Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", summarySheet, lastRow),
				Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", summarySheet, lastRow),
				Fill:       excelize.Fill{Type: "pattern", Color: []string{"1E90FF"}, Pattern: 1},
			}},
			Title:  title,
			Legend: excelize.ChartLegend{Position: "none"},
			XAxis:  excelize.ChartAxis{ReverseOrder: true},
			Dimension: excelize.ChartDimension{
				Width:  480,
				Height: 400,
			},
		}); err != nil {
			return fmt.Errorf("add chart: %w", err)
		}
	}

	return f.Write(w)
}

func summaryRecords(summaries []domain.GenreRevenueSummary) [][]string {
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, []string{s.Genre, formatFloat(s.Revenue)})
	}
	return records
}
