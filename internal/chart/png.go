package chart

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	apperrors "moviecli/internal/errors"
	"moviecli/pkg/contracts/domain"
)

var (
	DodgerBlue    = color.RGBA{R: 30, G: 144, B: 255, A: 255}
	gridColor     = color.RGBA{R: 221, G: 221, B: 221, A: 255}
	axisColor     = color.Black
	subtitleColor = color.RGBA{R: 85, G: 85, B: 85, A: 255}
)

const (
	tickPadding = 3
	labelOffset = 8
)

// PNGRenderer rasterizes a BarChart.
type PNGRenderer struct {
	Chart      BarChart
	Background color.Color
	BarColor   color.Color
	// Scale enlarges the finished image; values <= 1 keep the chart size.
	Scale float64
	Face  font.Face
}

// NewPNGRenderer creates a renderer with a white background and dodger blue bars.
func NewPNGRenderer(chart BarChart) *PNGRenderer {
	return &PNGRenderer{
		Chart:      chart,
		Background: color.White,
		BarColor:   DodgerBlue,
		Scale:      1,
		Face:       basicfont.Face7x13,
	}
}

// ContentType implements Renderer.
func (r *PNGRenderer) ContentType() string {
	return "image/png"
}

// Render implements Renderer.
func (r *PNGRenderer) Render(w io.Writer, summaries []domain.GenreRevenueSummary) error {
	img := r.Draw(summaries)
	if err := png.Encode(w, img); err != nil {
		return apperrors.NewRenderError("failed to encode chart", err)
	}
	return nil
}

// Draw returns the chart as an image.
func (r *PNGRenderer) Draw(summaries []domain.GenreRevenueSummary) image.Image {
	c := r.Chart
	layout := c.Layout(summaries)

	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)

	ox, oy := c.Margin.Left, c.Margin.Top
	innerHeight := c.InnerHeight()

	// Title block sits halfway into the top margin.
	titleY := oy / 2
	r.text(img, r.Title(), ox, titleY, axisColor)
	r.text(img, c.Subtitle, ox, titleY+lineHeight(r.Face)*3/2, subtitleColor)

	bar := image.NewUniform(r.BarColor)
	for _, b := range layout.Bars {
		rect := image.Rect(
			ox+int(math.Round(b.X)),
			oy+int(math.Round(b.Y)),
			ox+int(math.Round(b.X+b.Width)),
			oy+int(math.Round(b.Y+b.Height)),
		)
		draw.Draw(img, rect, bar, image.Point{}, draw.Over)
	}

	// Gridlines are drawn over the bars, then the axis domains.
	grid := image.NewUniform(gridColor)
	for _, t := range layout.Ticks {
		x := ox + int(math.Round(t.X))
		draw.Draw(img, image.Rect(x, oy, x+1, oy+innerHeight), grid, image.Point{}, draw.Over)

		width := font.MeasureString(r.Face, t.Label).Ceil()
		r.text(img, t.Label, x-width/2, oy-tickPadding-r.Face.Metrics().Descent.Ceil(), axisColor)
	}

	axis := image.NewUniform(axisColor)
	draw.Draw(img, image.Rect(ox, oy, ox+c.InnerWidth()+1, oy+1), axis, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(ox, oy, ox+1, oy+innerHeight), axis, image.Point{}, draw.Over)

	ascent := r.Face.Metrics().Ascent.Ceil()
	for _, b := range layout.Bars {
		width := font.MeasureString(r.Face, b.Genre).Ceil()
		mid := oy + int(math.Round(b.Y+b.Height/2))
		r.text(img, b.Genre, ox-labelOffset-width, mid+ascent/2-1, axisColor)
	}

	if r.Scale <= 1 {
		return img
	}

	scaled := image.NewRGBA(image.Rect(0, 0,
		int(math.Round(float64(c.Width)*r.Scale)),
		int(math.Round(float64(c.Height)*r.Scale))))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
	return scaled
}

// Title returns the chart title.
func (r *PNGRenderer) Title() string {
	if r.Chart.Title == "" {
		return DefaultTitle
	}
	return r.Chart.Title
}

func (r *PNGRenderer) text(dst draw.Image, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: r.Face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func lineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}
