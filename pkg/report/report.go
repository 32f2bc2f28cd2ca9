package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary aggregates quotation revenue and expense cost over a single
// resolved time interval. ProfitLoss is exact, no rounding applied.
type Summary struct {
	Range                string
	Start                time.Time
	End                  time.Time
	TotalQuotation       decimal.Decimal
	TotalExpense         decimal.Decimal
	TotalExpectedExpense decimal.Decimal
	ProfitLoss           decimal.Decimal
}

// Series is a chronological sequence of per-bucket profit/loss values.
// Labels and Data are always the same length and aligned positionally.
type Series struct {
	Labels []string
	Data   []int64
}
