package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fieldkeep/fieldkeep/internal/rest"
	"github.com/shopspring/decimal"
)

type SummaryDTO struct {
	Range                string          `json:"range"`
	Start                time.Time       `json:"start"`
	End                  time.Time       `json:"end"`
	TotalQuotation       decimal.Decimal `json:"totalQuotation"`
	TotalExpense         decimal.Decimal `json:"totalExpense"`
	TotalExpectedExpense decimal.Decimal `json:"totalExpectedExpense"`
	ProfitLoss           decimal.Decimal `json:"profitLoss"`
}

type SeriesDTO struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

type Handler struct {
	service  Service
	renderer SummaryRenderer
}

func NewHandler(service Service, renderer SummaryRenderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// GetSummary godoc
// @Summary Profit/loss summary for a named range
// @Tags Report
// @Produce json
// @Param range query string false "today, week or month (defaults to today)"
// @Success 200 {object} SummaryDTO
// @Failure 503 {object} rest.ErrorResponse "Data unavailable"
// @Router /api/reports/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	rangeName := r.URL.Query().Get("range")

	summary, err := h.service.Summary(r.Context(), rangeName)
	if err != nil {
		writeFailure(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := h.renderer.RenderSummary(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetSeries godoc
// @Summary Bucketed profit/loss series
// @Tags Report
// @Produce json
// @Param mode query string true "year or month"
// @Success 200 {object} SeriesDTO
// @Failure 400 {object} rest.ErrorResponse "Unknown mode"
// @Failure 503 {object} rest.ErrorResponse "Data unavailable"
// @Router /api/reports/series [get]
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	mode := r.URL.Query().Get("mode")

	series, err := h.service.Series(r.Context(), mode)
	if err != nil {
		if errors.Is(err, ErrUnknownMode) {
			w.WriteHeader(http.StatusBadRequest)
			if err := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Unknown mode",
				Details: "mode must be \"year\" or \"month\"",
			}); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		writeFailure(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SeriesDTO{Labels: series.Labels, Data: series.Data}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrDataUnavailable) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Report data unavailable"}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func summaryToDTO(s Summary) SummaryDTO {
	return SummaryDTO{
		Range:                s.Range,
		Start:                s.Start,
		End:                  s.End,
		TotalQuotation:       s.TotalQuotation,
		TotalExpense:         s.TotalExpense,
		TotalExpectedExpense: s.TotalExpectedExpense,
		ProfitLoss:           s.ProfitLoss,
	}
}
