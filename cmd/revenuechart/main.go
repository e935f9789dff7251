// Command revenuechart summarizes total revenue by genre for films released
// inside the configured window, writes the reports and prints a console chart.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"moviecli/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("revenuechart", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "path to config.yaml (defaults to config.yaml or configs/config.yaml)")
	inFile := fs.String("in", "", "input movies CSV (defaults to data/movies.csv)")
	outDir := fs.String("out", "", "output directory for reports (defaults to data/reports)")
	formats := fs.String("formats", "", "comma-separated report formats: csv,json,xlsx,png")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts := app.Options{
		ConfigFile: *configFile,
		InputFile:  *inFile,
		OutputDir:  *outDir,
	}
	if *formats != "" {
		opts.Formats = strings.Split(*formats, ",")
	}

	a, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "revenuechart: %v\n", err)
		return 1
	}
	defer a.Close(context.Background())

	ctx, stop := app.SignalContext()
	defer stop()

	if _, err := a.RunBatch(ctx, stdout); err != nil {
		a.Logger.ErrorContext(ctx, "Revenue chart failed", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "revenuechart: %v\n", err)
		return 1
	}
	return 0
}
