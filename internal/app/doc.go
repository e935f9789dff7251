// Package app wires moviecli together: configuration, logging, telemetry,
// services and the HTTP surface.
//
// # Initialization Flow
//
//	1. Load configuration (defaults < config.yaml < MOVIECLI_* environment)
//	2. Apply command-line overrides and validate
//	3. Resolve paths and ensure directories exist
//	4. Initialize logging and OpenTelemetry
//	5. Create the analysis and health services
//
// # Usage
//
// Batch commands call RunBatch or PrintSample; the web command calls Serve,
// which computes the result once and serves it until the context is cancelled:
//
//	a, err := app.New(app.Options{ConfigFile: *configFile})
//	if err != nil {
//	    return err
//	}
//	defer a.Close(context.Background())
//
//	ctx, stop := app.SignalContext()
//	defer stop()
//	return a.Serve(ctx)
package app
