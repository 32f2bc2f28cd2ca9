package expense

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryLabor     Category = "LABOR"
	CategoryTransport Category = "TRANSPORT"
	CategoryMaterial  Category = "MATERIAL"
	CategoryOther     Category = "OTHER"
)

var ErrUnknownCategory = errors.New("unknown expense category")

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryLabor, CategoryTransport, CategoryMaterial, CategoryOther:
		return Category(s), nil
	}
	return "", ErrUnknownCategory
}

// Expense is a cost incurred delivering work, optionally tied to a quotation
// or a ticket. A missing amount counts as zero in aggregation.
type Expense struct {
	Id          int
	Uid         string
	Amount      decimal.NullDecimal
	Category    Category
	QuotationId *int
	TicketId    *int
	Description string
	CreatedAt   time.Time
}
