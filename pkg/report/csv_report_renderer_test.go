package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRenderSummary(t *testing.T) {
	renderer := NewCsvSummaryRenderer()
	summary := Summary{
		Range:                "month",
		Start:                time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:                  time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		TotalQuotation:       decimal.NewFromInt(10000),
		TotalExpense:         decimal.NewFromInt(4000),
		TotalExpectedExpense: decimal.NewFromInt(3500),
		ProfitLoss:           decimal.NewFromInt(6000),
	}

	out, err := renderer.RenderSummary(summary)

	assert.NoError(t, err)
	expected := "Range,month\n" +
		"Start,2024-03-01T00:00:00Z\n" +
		"End,2024-04-01T00:00:00Z\n" +
		"Total quotation,10000\n" +
		"Total expense,4000\n" +
		"Total expected expense,3500\n" +
		"Profit / loss,6000\n"
	assert.Equal(t, expected, out)
}
