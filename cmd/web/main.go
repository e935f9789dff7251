// Command web computes the revenue-by-genre result once and serves it over
// HTTP until interrupted.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"moviecli/internal/app"
)

func main() {
	configFile := flag.String("config", "", "path to config.yaml")
	inFile := flag.String("in", "", "input movies CSV (defaults to data/movies.csv)")
	port := flag.Int("port", 0, "listen port (defaults to server.port)")
	flag.Parse()

	application, err := app.New(app.Options{
		ConfigFile: *configFile,
		InputFile:  *inFile,
		Port:       *port,
	})
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := app.SignalContext()
	err = application.Serve(ctx)
	stop()

	if closeErr := application.Close(context.Background()); closeErr != nil {
		slog.Warn("Cleanup failed", slog.String("error", closeErr.Error()))
	}
	if err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
