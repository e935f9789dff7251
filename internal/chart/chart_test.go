package chart

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"moviecli/pkg/contracts/domain"
)

var sampleSummaries = []domain.GenreRevenueSummary{
	{Genre: "Action", Revenue: 2787965087},
	{Genre: "Adventure", Revenue: 961000000},
	{Genre: "Drama", Revenue: 108846072},
}

func TestFormatSI(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{200000000, "200M"},
		{1e9, "1G"},
		{1.2e9, "1.2G"},
		{2.6e9, "2.6G"},
		{1500, "1.5k"},
		{42, "42"},
		{0.5, "500m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSI(tt.in), "input %v", tt.in)
	}
}

func TestNumberFormatter(t *testing.T) {
	f := NewNumberFormatter(language.English)
	assert.Equal(t, "2,787,965,087", f.Format(2787965087))
	assert.Equal(t, "1,000", f.Format(999.6))

	assert.Equal(t, "12,345", NewNumberFormatter(language.Und).Format(12345))
}

func TestBarChart_Defaults(t *testing.T) {
	c := DefaultBarChart()

	assert.Equal(t, 280, c.InnerWidth())
	assert.Equal(t, 380, c.InnerHeight())
	assert.Equal(t, "Total Revenue by Genre in $US", c.Title)
	assert.Equal(t, "Films w/ budget and revenue figures, 2000-2009", c.Subtitle)
	assert.Equal(t, "Films w/ budget and revenue figures, 2010-2015", c.WithWindow(2009, 2016).Subtitle)
}

func TestBarChart_Layout(t *testing.T) {
	layout := DefaultBarChart().Layout(sampleSummaries)

	require.Len(t, layout.Bars, 3)
	assert.Equal(t, "Action", layout.Bars[0].Genre)
	assert.Equal(t, 31.0, layout.Bars[0].Y)
	assert.Equal(t, 280.0, layout.Bars[0].Width)
	assert.Equal(t, 87.0, layout.Bars[0].Height)
	assert.Equal(t, "Drama", layout.Bars[2].Genre)
	assert.Equal(t, 263.0, layout.Bars[2].Y)
	assert.InDelta(t, 280*108846072/2787965087.0, layout.Bars[2].Width, 1e-9)

	require.Len(t, layout.Ticks, 14)
	assert.Equal(t, "0", layout.Ticks[0].Label)
	assert.Equal(t, "200M", layout.Ticks[1].Label)
	assert.Equal(t, "1G", layout.Ticks[5].Label)
	assert.Equal(t, "2.6G", layout.Ticks[13].Label)
}

func TestBarChart_LayoutEmpty(t *testing.T) {
	layout := DefaultBarChart().Layout(nil)
	assert.Empty(t, layout.Bars)
	assert.Empty(t, layout.Ticks)
}

func TestPNGRenderer(t *testing.T) {
	r := NewPNGRenderer(DefaultBarChart())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleSummaries))

	cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 500, cfg.Height)
	assert.Equal(t, "image/png", r.ContentType())

	img := r.Draw(sampleSummaries)
	red, green, blue, _ := img.At(190, 150).RGBA()
	assert.Equal(t, []uint32{30, 144, 255}, []uint32{red >> 8, green >> 8, blue >> 8}, "inside the Action bar")

	red, green, blue, _ = img.At(390, 490).RGBA()
	assert.Equal(t, []uint32{255, 255, 255}, []uint32{red >> 8, green >> 8, blue >> 8}, "background")
}

func TestPNGRenderer_Scale(t *testing.T) {
	r := NewPNGRenderer(DefaultBarChart())
	r.Scale = 2

	img := r.Draw(sampleSummaries)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 1000, img.Bounds().Dy())
}

func TestTextRenderer(t *testing.T) {
	r := NewTextRenderer(DefaultBarChart())
	r.BarWidth = 10

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleSummaries))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Total Revenue by Genre in $US", lines[0])
	assert.Equal(t, "Films w/ budget and revenue figures, 2000-2009", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "Action     ██████████  2,787,965,087", lines[3])
	assert.Equal(t, "Adventure  ███           961,000,000", lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "Drama      "))
	assert.True(t, strings.HasSuffix(lines[5], "  108,846,072"))
}

func TestTextRenderer_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(DefaultBarChart()).Render(&buf, []domain.GenreRevenueSummary{}))
	assert.Contains(t, buf.String(), "(no films matched)")
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer("png", DefaultBarChart())
	require.NoError(t, err)
	assert.IsType(t, &PNGRenderer{}, r)

	r, err = NewRenderer("text", DefaultBarChart())
	require.NoError(t, err)
	assert.IsType(t, &TextRenderer{}, r)

	_, err = NewRenderer("svg", DefaultBarChart())
	assert.Error(t, err)
}
