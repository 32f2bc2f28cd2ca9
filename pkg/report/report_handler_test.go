package report

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fieldkeep/fieldkeep/internal/utils"
	"github.com/fieldkeep/fieldkeep/pkg/expense"
	"github.com/fieldkeep/fieldkeep/pkg/quotation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestHandler(now time.Time) (*Handler, *quotation.StubQuotationRepo, *expense.StubExpenseRepo) {
	service, quotations, expenses := newTestService(now)
	return NewHandler(service, NewCsvSummaryRenderer()), quotations, expenses
}

func TestGetSummary(t *testing.T) {
	now := time.Date(2024, time.March, 20, 14, 30, 0, 0, time.UTC)
	handler, quotations, expenses := newTestHandler(now)
	storeQuotation(t, quotations, "q1", money(10000), time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))
	storeExpense(t, expenses, "e1", money(4000), time.Date(2024, time.March, 15, 11, 0, 0, 0, time.UTC))

	req := httptest.NewRequest(http.MethodGet, "/api/reports/summary?range=month", nil)
	rec := httptest.NewRecorder()
	handler.GetSummary(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var dto SummaryDTO
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "month", dto.Range)
	assert.True(t, dto.TotalQuotation.Equal(decimal.NewFromInt(10000)))
	assert.True(t, dto.TotalExpense.Equal(decimal.NewFromInt(4000)))
	assert.True(t, dto.ProfitLoss.Equal(decimal.NewFromInt(6000)))
}

func TestGetSummary_UnknownRangeEchoesToday(t *testing.T) {
	now := time.Date(2024, time.March, 20, 14, 30, 0, 0, time.UTC)
	handler, _, _ := newTestHandler(now)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/summary?range=nonsense", nil)
	rec := httptest.NewRecorder()
	handler.GetSummary(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var dto SummaryDTO
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "today", dto.Range)
}

func TestGetSummary_CsvOnAcceptHeader(t *testing.T) {
	now := time.Date(2024, time.March, 20, 14, 30, 0, 0, time.UTC)
	handler, quotations, _ := newTestHandler(now)
	storeQuotation(t, quotations, "q1", money(500), now)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/summary?range=today", nil)
	req.Header.Set("Accept", "text/csv")
	rec := httptest.NewRecorder()
	handler.GetSummary(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Total quotation,500")
	assert.Contains(t, rec.Body.String(), "Profit / loss,500")
}

func TestGetSummary_DataUnavailableReturns503(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 20, 14, 30, 0, 0, time.UTC)}
	service := NewService(failingQuotationSource{}, expense.NewStubExpenseRepo(), clock)
	handler := NewHandler(service, NewCsvSummaryRenderer())

	req := httptest.NewRequest(http.MethodGet, "/api/reports/summary", nil)
	rec := httptest.NewRecorder()
	handler.GetSummary(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestGetSeries(t *testing.T) {
	now := time.Date(2024, time.September, 1, 12, 0, 0, 0, time.UTC)
	handler, quotations, _ := newTestHandler(now)
	storeQuotation(t, quotations, "q1", money(3000), time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC))

	req := httptest.NewRequest(http.MethodGet, "/api/reports/series?mode=year", nil)
	rec := httptest.NewRecorder()
	handler.GetSeries(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var dto SeriesDTO
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Len(t, dto.Labels, 12)
	assert.Equal(t, int64(3000), dto.Data[5])
}

func TestGetSeries_UnknownModeReturns400(t *testing.T) {
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	handler, _, _ := newTestHandler(now)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/series?mode=decade", nil)
	rec := httptest.NewRecorder()
	handler.GetSeries(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "Unknown mode"))
}
