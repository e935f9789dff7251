// Package exporter writes revenue-by-genre reports.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with headers and a UTF-8 BOM for
// Excel compatibility. Relative paths land in the reports directory.
//
// ReportExporter: Writes one analysis result as CSV (Genre,Revenue), JSON
// (with run metadata) and XLSX (data sheet plus a native bar chart). Every
// file is written under a temporary name and renamed into place.
//
// Example usage:
//
//	exp := exporter.NewReportExporter(paths, logger)
//	csvPath, err := exp.WriteCSV(ctx, summaries)
//	xlsxPath, err := exp.WriteXLSX(ctx, summaries, "Films w/ budget and revenue figures, 2000-2009")
//
// The Encode* functions write the same content to any io.Writer, which the
// HTTP handlers use to stream reports without touching disk.
package exporter
