package http

import (
	"context"

	"moviecli/internal/chart"
	"moviecli/internal/services"
)

func withResult(ctx context.Context, result *services.AnalysisResult) context.Context {
	return context.WithValue(ctx, resultKey{}, result)
}

// resultFrom returns the result stored by ResultCtx.
func resultFrom(ctx context.Context) *services.AnalysisResult {
	result, _ := ctx.Value(resultKey{}).(*services.AnalysisResult)
	return result
}

func subtitle(result *services.AnalysisResult) string {
	return chart.Subtitle(result.Window.MinYearExclusive, result.Window.MaxYearExclusive)
}
