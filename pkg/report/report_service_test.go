package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fieldkeep/fieldkeep/internal/utils"
	"github.com/fieldkeep/fieldkeep/pkg/expense"
	"github.com/fieldkeep/fieldkeep/pkg/quotation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type failingQuotationSource struct{}

func (f failingQuotationSource) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]quotation.Quotation, error) {
	return nil, errors.New("connection refused")
}

type failingExpenseSource struct{}

func (f failingExpenseSource) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]expense.Expense, error) {
	return nil, errors.New("connection refused")
}

func newTestService(now time.Time) (*ServiceImpl, *quotation.StubQuotationRepo, *expense.StubExpenseRepo) {
	quotations := quotation.NewStubQuotationRepo()
	expenses := expense.NewStubExpenseRepo()
	clock := &utils.MockClock{FixedNow: now}
	return NewService(quotations, expenses, clock), quotations, expenses
}

func storeQuotation(t *testing.T, repo *quotation.StubQuotationRepo, uid string, grandTotal decimal.NullDecimal, createdAt time.Time) {
	t.Helper()
	_, err := repo.Store(context.Background(), quotation.Quotation{
		Uid:        uid,
		ClientId:   1,
		GrandTotal: grandTotal,
		CreatedAt:  createdAt,
	})
	assert.NoError(t, err)
}

func storeExpense(t *testing.T, repo *expense.StubExpenseRepo, uid string, amount decimal.NullDecimal, createdAt time.Time) {
	t.Helper()
	_, err := repo.Store(context.Background(), expense.Expense{
		Uid:       uid,
		Amount:    amount,
		Category:  expense.CategoryLabor,
		CreatedAt: createdAt,
	})
	assert.NoError(t, err)
}

func money(value int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(value), Valid: true}
}

func TestSummary_MonthRange(t *testing.T) {
	now := time.Date(2024, time.March, 20, 14, 30, 0, 0, time.UTC)
	service, quotations, expenses := newTestService(now)
	storeQuotation(t, quotations, "q1", money(10000), time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))
	storeExpense(t, expenses, "e1", money(4000), time.Date(2024, time.March, 15, 11, 0, 0, 0, time.UTC))

	summary, err := service.Summary(context.Background(), "month")

	assert.NoError(t, err)
	assert.Equal(t, "month", summary.Range)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), summary.Start)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), summary.End)
	assert.True(t, summary.TotalQuotation.Equal(decimal.NewFromInt(10000)))
	assert.True(t, summary.TotalExpense.Equal(decimal.NewFromInt(4000)))
	assert.True(t, summary.ProfitLoss.Equal(decimal.NewFromInt(6000)))
}

func TestSummary_ProfitLossIsExact(t *testing.T) {
	now := time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)
	service, quotations, expenses := newTestService(now)
	grandTotal := decimal.NullDecimal{Decimal: decimal.RequireFromString("100.75"), Valid: true}
	amount := decimal.NullDecimal{Decimal: decimal.RequireFromString("40.50"), Valid: true}
	storeQuotation(t, quotations, "q1", grandTotal, now)
	storeExpense(t, expenses, "e1", amount, now)

	summary, err := service.Summary(context.Background(), "today")

	assert.NoError(t, err)
	assert.True(t, summary.ProfitLoss.Equal(decimal.RequireFromString("60.25")),
		"got %s", summary.ProfitLoss)
}

func TestSummary_TodayRangeBoundaries(t *testing.T) {
	now := time.Date(2024, time.March, 20, 14, 30, 0, 0, time.UTC)
	service, quotations, _ := newTestService(now)
	storeQuotation(t, quotations, "in", money(100), time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC))
	storeQuotation(t, quotations, "before", money(200), time.Date(2024, time.March, 19, 23, 59, 59, 0, time.UTC))
	storeQuotation(t, quotations, "after", money(300), time.Date(2024, time.March, 21, 0, 0, 0, 0, time.UTC))

	summary, err := service.Summary(context.Background(), "today")

	assert.NoError(t, err)
	assert.True(t, summary.TotalQuotation.Equal(decimal.NewFromInt(100)))
}

func TestSummary_WeekStartsOnMonday(t *testing.T) {
	// 2024-03-20 is a Wednesday, so the week is [Mar 18, Mar 25).
	now := time.Date(2024, time.March, 20, 14, 30, 0, 0, time.UTC)
	service, _, _ := newTestService(now)

	summary, err := service.Summary(context.Background(), "week")

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC), summary.Start)
	assert.Equal(t, time.Date(2024, time.March, 25, 0, 0, 0, 0, time.UTC), summary.End)
}

func TestSummary_WeekOnSundayStartsPreviousMonday(t *testing.T) {
	// 2024-03-24 is a Sunday, still part of the week starting Mar 18.
	now := time.Date(2024, time.March, 24, 10, 0, 0, 0, time.UTC)
	service, _, _ := newTestService(now)

	summary, err := service.Summary(context.Background(), "week")

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC), summary.Start)
}

func TestSummary_UnknownRangeFallsBackToToday(t *testing.T) {
	now := time.Date(2024, time.March, 20, 14, 30, 0, 0, time.UTC)
	service, _, _ := newTestService(now)

	summary, err := service.Summary(context.Background(), "fortnight")

	assert.NoError(t, err)
	assert.Equal(t, "today", summary.Range)
	assert.Equal(t, time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC), summary.Start)
	assert.Equal(t, time.Date(2024, time.March, 21, 0, 0, 0, 0, time.UTC), summary.End)
}

func TestSummary_NullAmountsCountAsZero(t *testing.T) {
	now := time.Date(2024, time.March, 20, 14, 30, 0, 0, time.UTC)
	service, quotations, expenses := newTestService(now)
	storeQuotation(t, quotations, "q1", decimal.NullDecimal{}, now)
	storeQuotation(t, quotations, "q2", money(500), now)
	storeExpense(t, expenses, "e1", decimal.NullDecimal{}, now)

	summary, err := service.Summary(context.Background(), "today")

	assert.NoError(t, err)
	assert.True(t, summary.TotalQuotation.Equal(decimal.NewFromInt(500)))
	assert.True(t, summary.TotalExpense.Equal(decimal.Zero))
	assert.True(t, summary.ProfitLoss.Equal(decimal.NewFromInt(500)))
}

func TestSummary_DataUnavailableOnQuotationFailure(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 20, 14, 30, 0, 0, time.UTC)}
	service := NewService(failingQuotationSource{}, expense.NewStubExpenseRepo(), clock)

	_, err := service.Summary(context.Background(), "today")

	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestSummary_DataUnavailableOnExpenseFailure(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 20, 14, 30, 0, 0, time.UTC)}
	service := NewService(quotation.NewStubQuotationRepo(), failingExpenseSource{}, clock)

	_, err := service.Summary(context.Background(), "today")

	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestSeries_YearHasTwelveLabels(t *testing.T) {
	for _, month := range []time.Month{time.January, time.June, time.December} {
		now := time.Date(2024, month, 15, 12, 0, 0, 0, time.UTC)
		service, _, _ := newTestService(now)

		series, err := service.Series(context.Background(), "year")

		assert.NoError(t, err)
		assert.Len(t, series.Labels, 12)
		assert.Len(t, series.Data, 12)
		assert.Equal(t, "Jan", series.Labels[0])
		assert.Equal(t, "Dec", series.Labels[11])
	}
}

func TestSeries_YearAllZerosWithoutRecords(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	service, _, _ := newTestService(now)

	series, err := service.Series(context.Background(), "year")

	assert.NoError(t, err)
	assert.Equal(t, make([]int64, 12), series.Data)
}

func TestSeries_YearBucketsByMonth(t *testing.T) {
	now := time.Date(2024, time.September, 1, 12, 0, 0, 0, time.UTC)
	service, quotations, expenses := newTestService(now)
	storeQuotation(t, quotations, "q1", money(5000), time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC))
	storeExpense(t, expenses, "e1", money(2000), time.Date(2024, time.June, 20, 9, 0, 0, 0, time.UTC))

	series, err := service.Series(context.Background(), "year")

	assert.NoError(t, err)
	expected := make([]int64, 12)
	expected[5] = 3000
	assert.Equal(t, expected, series.Data)
}

func TestSeries_MonthHasOneLabelPerDay(t *testing.T) {
	cases := []struct {
		now  time.Time
		days int
	}{
		{time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC), 29},
		{time.Date(2023, time.February, 10, 12, 0, 0, 0, time.UTC), 28},
		{time.Date(2024, time.April, 10, 12, 0, 0, 0, time.UTC), 30},
		{time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC), 31},
	}
	for _, tc := range cases {
		service, _, _ := newTestService(tc.now)

		series, err := service.Series(context.Background(), "month")

		assert.NoError(t, err)
		assert.Len(t, series.Labels, tc.days)
		assert.Len(t, series.Data, tc.days)
	}
}

func TestSeries_MonthBucketsByDay(t *testing.T) {
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	service, quotations, expenses := newTestService(now)
	storeQuotation(t, quotations, "q1", money(1000), time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC))
	storeExpense(t, expenses, "e1", money(250), time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC))
	storeExpense(t, expenses, "e2", money(100), time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC))

	series, err := service.Series(context.Background(), "month")

	assert.NoError(t, err)
	assert.Equal(t, "5 Mar", series.Labels[4])
	assert.Equal(t, int64(750), series.Data[4])
	assert.Equal(t, int64(-100), series.Data[30])
}

func TestSeries_RoundsPerBucket(t *testing.T) {
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	service, quotations, _ := newTestService(now)
	grandTotal := decimal.NullDecimal{Decimal: decimal.RequireFromString("100.6"), Valid: true}
	storeQuotation(t, quotations, "q1", grandTotal, time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC))

	series, err := service.Series(context.Background(), "month")

	assert.NoError(t, err)
	assert.Equal(t, int64(101), series.Data[4])
}

func TestSeries_UnknownModeIsRejected(t *testing.T) {
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	service, _, _ := newTestService(now)

	_, err := service.Series(context.Background(), "decade")

	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestSeries_DataUnavailableOnSourceFailure(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)}
	service := NewService(failingQuotationSource{}, expense.NewStubExpenseRepo(), clock)

	_, err := service.Series(context.Background(), "year")

	assert.ErrorIs(t, err, ErrDataUnavailable)
}
