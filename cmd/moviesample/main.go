// Command moviesample prints the first normalized movie records as JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"moviecli/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("moviesample", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "path to config.yaml")
	inFile := fs.String("in", "", "input movies CSV (defaults to data/movies.csv)")
	n := fs.Int("n", 0, "number of records to print (defaults to analysis.sample_size)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *n < 0 {
		fmt.Fprintln(stderr, "moviesample: -n must not be negative")
		return 2
	}

	a, err := app.New(app.Options{ConfigFile: *configFile, InputFile: *inFile})
	if err != nil {
		fmt.Fprintf(stderr, "moviesample: %v\n", err)
		return 1
	}
	defer a.Close(context.Background())

	ctx, stop := app.SignalContext()
	defer stop()

	if err := a.PrintSample(ctx, stdout, *n); err != nil {
		a.Logger.ErrorContext(ctx, "Sample failed", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "moviesample: %v\n", err)
		return 1
	}
	return 0
}
