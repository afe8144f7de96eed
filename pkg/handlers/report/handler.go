package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mcp-analytics/resort-dmr/pkg/models/api"
	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
	"github.com/mcp-analytics/resort-dmr/pkg/services/config"
)

const dateLayout = "01/02/2006"

// Generator produces a report for a named resort and reference date.
type Generator interface {
	Generate(ctx context.Context, resortName string, reportDate time.Time) (*domain.Report, error)
	Resorts() []string
}

type Handler struct {
	generator Generator
}

func NewHandler(generator Generator) *Handler {
	return &Handler{generator: generator}
}

func (h *Handler) ListResorts(w http.ResponseWriter, r *http.Request) {
	response := make([]api.Resort, 0)
	for _, name := range h.generator.Resorts() {
		response = append(response, api.Resort{Name: name})
	}
	writeJSON(r.Context(), w, http.StatusOK, response)
}

// GetReport serves GET /api/v1/resorts/{resort}/report?date=MM/DD/YYYY.
// A missing date defaults to yesterday.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resort := chi.URLParam(r, "resort")

	reportDate := time.Now().AddDate(0, 0, -1)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(ctx, w, http.StatusBadRequest, "date must be MM/DD/YYYY")
			return
		}
		reportDate = parsed
	}

	report, err := h.generator.Generate(ctx, resort, reportDate)
	if err != nil {
		if errors.Is(err, config.ErrUnknownResort) {
			writeError(ctx, w, http.StatusNotFound, err.Error())
			return
		}
		zerolog.Ctx(ctx).Error().Err(err).Str("resort", resort).Msg("report generation failed")
		writeError(ctx, w, http.StatusInternalServerError, "report generation failed")
		return
	}

	writeJSON(ctx, w, http.StatusOK, api.MapReport(report))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(ctx, w, status, api.Error{Message: message})
}
