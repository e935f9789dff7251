// Package chart presents a revenue-by-genre summary. It only consumes the
// ordered []domain.GenreRevenueSummary produced by dataprocessing and never
// filters or reorders it.
//
// BarChart computes the geometry: a linear revenue scale from zero to the
// largest total, a band scale with one padded band per genre, and round tick
// values labelled with SI prefixes. Renderers turn that geometry into output:
//
//	r := chart.NewPNGRenderer(chart.DefaultBarChart().WithWindow(1999, 2010))
//	err := r.Render(w, summaries)
package chart
