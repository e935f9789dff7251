package chart

import (
	"fmt"
	"io"

	"moviecli/pkg/contracts/domain"
)

// Renderer draws a revenue-by-genre summary to w.
type Renderer interface {
	Render(w io.Writer, summaries []domain.GenreRevenueSummary) error
	ContentType() string
}

// NewRenderer returns the renderer for format ("png" or "text").
func NewRenderer(format string, chart BarChart) (Renderer, error) {
	switch format {
	case "png":
		return NewPNGRenderer(chart), nil
	case "text", "txt":
		return NewTextRenderer(chart), nil
	default:
		return nil, fmt.Errorf("unsupported chart format: %s", format)
	}
}
