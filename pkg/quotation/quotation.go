package quotation

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type QuotationStatus string

const (
	StatusDraft    QuotationStatus = "draft"
	StatusSent     QuotationStatus = "sent"
	StatusAccepted QuotationStatus = "accepted"
	StatusRejected QuotationStatus = "rejected"
)

var ErrUnknownStatus = errors.New("unknown quotation status")

func ParseStatus(s string) (QuotationStatus, error) {
	switch QuotationStatus(s) {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected:
		return QuotationStatus(s), nil
	}
	return "", ErrUnknownStatus
}

// Quotation is a priced proposal sent to a client. GrandTotal is the revenue
// figure used by reporting; ExpectedExpense is the estimated cost of
// delivering the work. Both may be absent on drafts, in which case they count
// as zero in aggregation.
type Quotation struct {
	Id              int
	Uid             string
	ClientId        int
	TicketId        *int
	Number          string
	GrandTotal      decimal.NullDecimal
	ExpectedExpense decimal.NullDecimal
	Status          QuotationStatus
	CreatedAt       time.Time
}
