package chart

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatSI formats v with an SI prefix and up to six significant digits,
// trimming insignificant zeros: 0, 200M, 1.2G.
func FormatSI(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	value, prefix := humanize.ComputeSI(v)
	return strconv.FormatFloat(value, 'g', 6, 64) + prefix
}

// NumberFormatter formats whole amounts with locale-aware digit grouping.
type NumberFormatter struct {
	printer *message.Printer
}

// NewNumberFormatter creates a formatter for tag. language.Und falls back to
// English grouping.
func NewNumberFormatter(tag language.Tag) NumberFormatter {
	if tag == language.Und {
		tag = language.English
	}
	return NumberFormatter{printer: message.NewPrinter(tag)}
}

// Format rounds v to a whole number and groups its digits.
func (f NumberFormatter) Format(v float64) string {
	return f.printer.Sprintf("%d", int64(math.Round(v)))
}
