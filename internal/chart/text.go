package chart

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"

	apperrors "moviecli/internal/errors"
	"moviecli/pkg/contracts/domain"
)

const (
	defaultBarWidth = 40
	barGlyph        = "█"
)

// TextRenderer draws the chart as a console table with proportional bars.
type TextRenderer struct {
	Chart    BarChart
	BarWidth int
	Numbers  NumberFormatter
}

// NewTextRenderer creates a renderer with 40-character bars and English digit
// grouping.
func NewTextRenderer(chart BarChart) *TextRenderer {
	return &TextRenderer{
		Chart:    chart,
		BarWidth: defaultBarWidth,
		Numbers:  NewNumberFormatter(language.English),
	}
}

// ContentType implements Renderer.
func (r *TextRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render implements Renderer.
func (r *TextRenderer) Render(w io.Writer, summaries []domain.GenreRevenueSummary) error {
	bw := bufio.NewWriter(w)

	title := r.Chart.Title
	if title == "" {
		title = DefaultTitle
	}
	fmt.Fprintln(bw, title)
	if r.Chart.Subtitle != "" {
		fmt.Fprintln(bw, r.Chart.Subtitle)
	}
	fmt.Fprintln(bw)

	if len(summaries) == 0 {
		fmt.Fprintln(bw, "(no films matched)")
		return r.flush(bw)
	}

	labelWidth := 0
	valueWidth := 0
	values := make([]string, len(summaries))
	maxValue := 0.0
	for i, s := range summaries {
		if n := utf8.RuneCountInString(s.Genre); n > labelWidth {
			labelWidth = n
		}
		values[i] = r.Numbers.Format(s.Revenue)
		if n := len(values[i]); n > valueWidth {
			valueWidth = n
		}
		maxValue = math.Max(maxValue, s.Revenue)
	}

	barWidth := r.BarWidth
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}

	for i, s := range summaries {
		n := 0
		if maxValue > 0 && s.Revenue > 0 {
			n = int(math.Round(s.Revenue / maxValue * float64(barWidth)))
		}
		pad := labelWidth - utf8.RuneCountInString(s.Genre)
		fmt.Fprintf(bw, "%s%s  %s%s  %*s\n",
			s.Genre, strings.Repeat(" ", pad),
			strings.Repeat(barGlyph, n), strings.Repeat(" ", barWidth-n),
			valueWidth, values[i])
	}

	return r.flush(bw)
}

func (r *TextRenderer) flush(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil {
		return apperrors.NewRenderError("failed to write chart", err)
	}
	return nil
}
