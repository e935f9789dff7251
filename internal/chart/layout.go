package chart

import (
	"fmt"

	"moviecli/pkg/contracts/domain"
)

const (
	DefaultTitle     = "Total Revenue by Genre in $US"
	DefaultTickCount = 10
)

// Margin is the space between the outer edge and the plot area, in pixels.
type Margin struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// BarChart describes a horizontal bar chart of revenue per genre. Genres run
// down the y axis in summary order and the revenue axis sits on top.
type BarChart struct {
	Width     int
	Height    int
	Margin    Margin
	Padding   float64
	TickCount int
	Title     string
	Subtitle  string
}

// DefaultBarChart returns a 400x500 chart for the 2000-2009 window.
func DefaultBarChart() BarChart {
	return BarChart{
		Width:     400,
		Height:    500,
		Margin:    Margin{Top: 80, Right: 40, Bottom: 40, Left: 80},
		Padding:   0.25,
		TickCount: DefaultTickCount,
		Title:     DefaultTitle,
		Subtitle:  Subtitle(1999, 2010),
	}
}

// Subtitle describes the release window given its exclusive bounds.
func Subtitle(minYearExclusive, maxYearExclusive int) string {
	return fmt.Sprintf("Films w/ budget and revenue figures, %d-%d", minYearExclusive+1, maxYearExclusive-1)
}

// WithWindow returns a copy whose subtitle names the given release window.
func (c BarChart) WithWindow(minYearExclusive, maxYearExclusive int) BarChart {
	c.Subtitle = Subtitle(minYearExclusive, maxYearExclusive)
	return c
}

// InnerWidth is the plot area width.
func (c BarChart) InnerWidth() int {
	return c.Width - c.Margin.Left - c.Margin.Right
}

// InnerHeight is the plot area height.
func (c BarChart) InnerHeight() int {
	return c.Height - c.Margin.Top - c.Margin.Bottom
}

// Bar is one genre's rectangle in plot-area coordinates.
type Bar struct {
	Genre   string
	Revenue float64
	X       float64
	Y       float64
	Width   float64
	Height  float64
}

// Tick is one revenue axis tick in plot-area coordinates.
type Tick struct {
	Value float64
	X     float64
	Label string
}

// Layout is the computed geometry of a chart.
type Layout struct {
	Chart     BarChart
	Bars      []Bar
	Ticks     []Tick
	MaxValue  float64
	Bandwidth float64
}

// Layout computes bar and tick geometry for summaries. Bars keep the order of
// summaries.
func (c BarChart) Layout(summaries []domain.GenreRevenueSummary) Layout {
	width := float64(c.InnerWidth())
	height := float64(c.InnerHeight())

	maxValue := 0.0
	genres := make([]string, len(summaries))
	for i, s := range summaries {
		genres[i] = s.Genre
		if s.Revenue > maxValue {
			maxValue = s.Revenue
		}
	}

	domainMax := maxValue
	if domainMax <= 0 {
		domainMax = 1
	}
	x := NewLinearScale([2]float64{0, domainMax}, [2]float64{0, width})
	y := NewBandScale(genres, [2]float64{0, height}, c.Padding, true, 0.5)

	layout := Layout{
		Chart:     c,
		Bars:      make([]Bar, 0, len(summaries)),
		MaxValue:  maxValue,
		Bandwidth: y.Bandwidth(),
	}

	for _, s := range summaries {
		top, _ := y.Map(s.Genre)
		w := x.Map(s.Revenue)
		if w < 0 {
			w = 0
		}
		layout.Bars = append(layout.Bars, Bar{
			Genre:   s.Genre,
			Revenue: s.Revenue,
			X:       0,
			Y:       top,
			Width:   w,
			Height:  y.Bandwidth(),
		})
	}

	if len(summaries) > 0 {
		for _, v := range x.Ticks(c.TickCount) {
			layout.Ticks = append(layout.Ticks, Tick{
				Value: v,
				X:     x.Map(v),
				Label: FormatSI(v),
			})
		}
	}

	return layout
}
