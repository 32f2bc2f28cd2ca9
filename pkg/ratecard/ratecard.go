package ratecard

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateCard is a priced line item used when drafting quotations.
type RateCard struct {
	Id        int
	Uid       string
	Name      string
	Category  string
	Unit      string
	UnitPrice decimal.Decimal
	Active    bool
	CreatedAt time.Time
}
