package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldkeep/fieldkeep/internal/utils"
	"github.com/fieldkeep/fieldkeep/pkg/expense"
	"github.com/fieldkeep/fieldkeep/pkg/quotation"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrDataUnavailable wraps any record-store read failure. A computation
	// that hits one aborts as a whole, no partial sums are returned.
	ErrDataUnavailable = errors.New("report data unavailable")

	ErrUnknownMode = errors.New("unknown series mode")
)

// QuotationSource is the only capability the engine needs from quotations.
type QuotationSource interface {
	FindCreatedBetween(ctx context.Context, from, to time.Time) ([]quotation.Quotation, error)
}

// ExpenseSource is the only capability the engine needs from expenses.
type ExpenseSource interface {
	FindCreatedBetween(ctx context.Context, from, to time.Time) ([]expense.Expense, error)
}

type Service interface {
	Summary(ctx context.Context, rangeName string) (Summary, error)
	Series(ctx context.Context, mode string) (Series, error)
}

type ServiceImpl struct {
	quotations QuotationSource
	expenses   ExpenseSource
	clock      utils.Clock
}

func NewService(quotations QuotationSource, expenses ExpenseSource, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		quotations: quotations,
		expenses:   expenses,
		clock:      clock,
	}
}

// Summary resolves rangeName to a half-open [start, end) interval in local
// time and sums all quotations and expenses created within it. An unknown
// range name falls back to "today", and the echoed Range reflects that.
func (s *ServiceImpl) Summary(ctx context.Context, rangeName string) (Summary, error) {
	resolved, start, end := resolveRange(rangeName, s.clock.Now())

	quotations, expenses, err := s.fetch(ctx, start, end)
	if err != nil {
		return Summary{}, err
	}

	var totalQuotation, totalExpense, totalExpected decimal.Decimal
	for _, q := range quotations {
		totalQuotation = totalQuotation.Add(q.GrandTotal.Decimal)
		totalExpected = totalExpected.Add(q.ExpectedExpense.Decimal)
	}
	for _, e := range expenses {
		totalExpense = totalExpense.Add(e.Amount.Decimal)
	}

	return Summary{
		Range:                resolved,
		Start:                start,
		End:                  end,
		TotalQuotation:       totalQuotation,
		TotalExpense:         totalExpense,
		TotalExpectedExpense: totalExpected,
		ProfitLoss:           totalQuotation.Sub(totalExpense),
	}, nil
}

// Series buckets profit/loss over the current year (12 month buckets) or the
// current month (one bucket per day). Both records are fetched with a single
// ranged read each and assigned to buckets by createdAt.
func (s *ServiceImpl) Series(ctx context.Context, mode string) (Series, error) {
	now := s.clock.Now()

	switch mode {
	case "year":
		return s.yearSeries(ctx, now)
	case "month":
		return s.monthSeries(ctx, now)
	}
	return Series{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

func (s *ServiceImpl) yearSeries(ctx context.Context, now time.Time) (Series, error) {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(1, 0, 0)

	quotations, expenses, err := s.fetch(ctx, start, end)
	if err != nil {
		return Series{}, err
	}

	labels := make([]string, 12)
	quotationSums := make([]decimal.Decimal, 12)
	expenseSums := make([]decimal.Decimal, 12)
	for i := 0; i < 12; i++ {
		labels[i] = start.AddDate(0, i, 0).Format("Jan")
	}
	for _, q := range quotations {
		i := int(q.CreatedAt.Month()) - 1
		quotationSums[i] = quotationSums[i].Add(q.GrandTotal.Decimal)
	}
	for _, e := range expenses {
		i := int(e.CreatedAt.Month()) - 1
		expenseSums[i] = expenseSums[i].Add(e.Amount.Decimal)
	}

	return Series{Labels: labels, Data: bucketValues(quotationSums, expenseSums)}, nil
}

func (s *ServiceImpl) monthSeries(ctx context.Context, now time.Time) (Series, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)
	days := end.AddDate(0, 0, -1).Day()

	quotations, expenses, err := s.fetch(ctx, start, end)
	if err != nil {
		return Series{}, err
	}

	labels := make([]string, days)
	quotationSums := make([]decimal.Decimal, days)
	expenseSums := make([]decimal.Decimal, days)
	for i := 0; i < days; i++ {
		labels[i] = start.AddDate(0, 0, i).Format("2 Jan")
	}
	for _, q := range quotations {
		i := q.CreatedAt.Day() - 1
		quotationSums[i] = quotationSums[i].Add(q.GrandTotal.Decimal)
	}
	for _, e := range expenses {
		i := e.CreatedAt.Day() - 1
		expenseSums[i] = expenseSums[i].Add(e.Amount.Decimal)
	}

	return Series{Labels: labels, Data: bucketValues(quotationSums, expenseSums)}, nil
}

func (s *ServiceImpl) fetch(ctx context.Context, start, end time.Time) ([]quotation.Quotation, []expense.Expense, error) {
	quotations, err := s.quotations.FindCreatedBetween(ctx, start, end)
	if err != nil {
		log.Errorf("could not read quotations for report: %v", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	expenses, err := s.expenses.FindCreatedBetween(ctx, start, end)
	if err != nil {
		log.Errorf("could not read expenses for report: %v", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return quotations, expenses, nil
}

// bucketValues rounds per-bucket profit/loss to a whole number. Rounding
// happens here only, never in summary computation.
func bucketValues(quotationSums, expenseSums []decimal.Decimal) []int64 {
	values := make([]int64, len(quotationSums))
	for i := range quotationSums {
		values[i] = quotationSums[i].Sub(expenseSums[i]).Round(0).IntPart()
	}
	return values
}

// resolveRange maps a named range to a half-open local-time interval.
// Weeks start on Monday. Anything unrecognized resolves to "today".
func resolveRange(rangeName string, now time.Time) (string, time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch rangeName {
	case "week":
		offset := (int(now.Weekday()) + 6) % 7
		start := midnight.AddDate(0, 0, -offset)
		return "week", start, start.AddDate(0, 0, 7)
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return "month", start, start.AddDate(0, 1, 0)
	}
	return "today", midnight, midnight.AddDate(0, 0, 1)
}
