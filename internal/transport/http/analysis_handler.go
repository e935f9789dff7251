package http

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "moviecli/internal/errors"
	"moviecli/internal/exporter"
	"moviecli/internal/services"
	"moviecli/internal/validation"
	"moviecli/pkg/contracts/domain"
)

// Query parameter bounds for /movies/sample.
const (
	sampleLimitParam = "limit"
	sampleLimitRule  = "min=1,max=1000"
)

// AnalysisService is the part of services.AnalysisService the handlers need.
type AnalysisService interface {
	Latest() (*services.AnalysisResult, bool)
	RenderChart(w io.Writer, result *services.AnalysisResult, format string) error
}

// AnalysisHandler serves the precomputed revenue-by-genre result read-only.
type AnalysisHandler struct {
	service    AnalysisService
	sampleSize int
	logger     *slog.Logger
}

// SampleResponse is the body of GET /movies/sample.
type SampleResponse struct {
	Count   int                  `json:"count"`
	Records []domain.MovieRecord `json:"records"`
}

// NewAnalysisHandler creates a new analysis handler. sampleSize is the
// default limit for /movies/sample.
func NewAnalysisHandler(service AnalysisService, sampleSize int, logger *slog.Logger) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if sampleSize <= 0 {
		sampleSize = services.DefaultSampleSize
	}
	return &AnalysisHandler{
		service:    service,
		sampleSize: sampleSize,
		logger:     logger.With(slog.String("component", "analysis_handler")),
	}
}

// Routes returns the analysis routes, mounted at /api/v1.
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.ResultCtx)

	r.Get("/genres/revenue", h.GetGenreRevenue)
	r.Get("/movies/sample", h.GetSample)
	r.Get("/charts/genre-revenue.png", h.GetChart("png"))
	r.Get("/charts/genre-revenue.txt", h.GetChart("text"))
	r.Get("/reports/genre-revenue.csv", h.GetReport(exporter.FormatCSV))
	r.Get("/reports/genre-revenue.json", h.GetReport(exporter.FormatJSON))
	r.Get("/reports/genre-revenue.xlsx", h.GetReport(exporter.FormatXLSX))
	return r
}

type resultKey struct{}

// ResultCtx loads the latest result into the request context and answers 503
// until one exists.
func (h *AnalysisHandler) ResultCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, ok := h.service.Latest()
		if !ok {
			h.writeError(w, r, apierrors.ErrServiceUnavailable)
			return
		}
		ctx := withResult(r.Context(), result)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetGenreRevenue handles GET /genres/revenue
func (h *AnalysisHandler) GetGenreRevenue(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, resultFrom(r.Context()).Report())
}

// GetSample handles GET /movies/sample?limit=n
func (h *AnalysisHandler) GetSample(w http.ResponseWriter, r *http.Request) {
	limit := h.sampleSize
	if raw := r.URL.Query().Get(sampleLimitParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, r, apierrors.ErrValidation(sampleLimitParam, "must be an integer"))
			return
		}
		if err := validation.Var(sampleLimitParam, n, sampleLimitRule); err != nil {
			h.writeError(w, r, err)
			return
		}
		limit = n
	}

	records := resultFrom(r.Context()).Sample(limit)
	render.JSON(w, r, SampleResponse{Count: len(records), Records: records})
}

// GetChart renders the chart in format ("png" or "text").
func (h *AnalysisHandler) GetChart(format string) http.HandlerFunc {
	contentType := "image/png"
	if format != "png" {
		contentType = "text/plain; charset=utf-8"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := h.service.RenderChart(&buf, resultFrom(r.Context()), format); err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeBody(w, r, contentType, "", buf.Bytes())
	}
}

// GetReport streams the report in format as a download.
func (h *AnalysisHandler) GetReport(format exporter.Format) http.HandlerFunc {
	filename := "genre_revenue." + string(format)

	return func(w http.ResponseWriter, r *http.Request) {
		result := resultFrom(r.Context())

		var buf bytes.Buffer
		var err error
		switch format {
		case exporter.FormatCSV:
			err = exporter.EncodeCSV(&buf, result.Summaries)
		case exporter.FormatJSON:
			err = exporter.EncodeJSON(&buf, result.Report())
		case exporter.FormatXLSX:
			err = exporter.EncodeXLSX(&buf, result.Summaries, subtitle(result))
		default:
			err = fmt.Errorf("%w: %s", services.ErrUnsupportedFormat, format)
		}
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		h.writeBody(w, r, format.ContentType(), filename, buf.Bytes())
	}
}

func (h *AnalysisHandler) writeBody(w http.ResponseWriter, r *http.Request, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write response body", slog.String("error", err.Error()))
	}
}

func (h *AnalysisHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apierrors.FromError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}
	render.Render(w, r, apierrors.NewErrorResponse(apiErr))
}
