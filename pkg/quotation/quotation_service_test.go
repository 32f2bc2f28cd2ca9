package quotation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fieldkeep/fieldkeep/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func money(value int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(value), Valid: true}
}

func TestCreate(t *testing.T) {
	service := NewService(NewStubQuotationRepo())

	created, err := service.Create(context.Background(), Quotation{
		ClientId:   1,
		GrandTotal: money(10000),
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.Uid)
	assert.Equal(t, StatusDraft, created.Status)
	assert.True(t, strings.HasPrefix(created.Number, "Q-"))
}

func TestCreate_NumberCarriesDate(t *testing.T) {
	service := NewService(NewStubQuotationRepo())
	service.clock = &utils.MockClock{FixedNow: time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)}

	created, err := service.Create(context.Background(), Quotation{ClientId: 1})

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.Number, "Q-20240315-"), "got %s", created.Number)
}

func TestCreate_KeepsProvidedNumber(t *testing.T) {
	service := NewService(NewStubQuotationRepo())

	created, err := service.Create(context.Background(), Quotation{ClientId: 1, Number: "Q-CUSTOM-1"})

	assert.NoError(t, err)
	assert.Equal(t, "Q-CUSTOM-1", created.Number)
}

func TestCreate_RequiresClient(t *testing.T) {
	service := NewService(NewStubQuotationRepo())

	_, err := service.Create(context.Background(), Quotation{GrandTotal: money(100)})
	assert.ErrorIs(t, err, ErrQuotationDataInvalid)
}

func TestCreate_RejectsNegativeGrandTotal(t *testing.T) {
	service := NewService(NewStubQuotationRepo())

	_, err := service.Create(context.Background(), Quotation{ClientId: 1, GrandTotal: money(-100)})
	assert.ErrorIs(t, err, ErrQuotationDataInvalid)
}

func TestCreate_AllowsNullAmounts(t *testing.T) {
	service := NewService(NewStubQuotationRepo())

	created, err := service.Create(context.Background(), Quotation{ClientId: 1})

	assert.NoError(t, err)
	assert.False(t, created.GrandTotal.Valid)
	assert.False(t, created.ExpectedExpense.Valid)
}

func TestUpdate(t *testing.T) {
	service := NewService(NewStubQuotationRepo())
	created, err := service.Create(context.Background(), Quotation{ClientId: 1, GrandTotal: money(100)})
	assert.NoError(t, err)

	created.GrandTotal = money(250)
	created.Status = StatusSent
	updated, err := service.Update(context.Background(), created)

	assert.NoError(t, err)
	assert.True(t, updated.GrandTotal.Decimal.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, StatusSent, updated.Status)
}

func TestUpdate_NotFound(t *testing.T) {
	service := NewService(NewStubQuotationRepo())

	_, err := service.Update(context.Background(), Quotation{Uid: "missing", Status: StatusDraft})
	assert.ErrorIs(t, err, ErrQuotationNotFound)
}

func TestDelete(t *testing.T) {
	service := NewService(NewStubQuotationRepo())
	created, err := service.Create(context.Background(), Quotation{ClientId: 1})
	assert.NoError(t, err)

	assert.NoError(t, service.Delete(context.Background(), created.Uid))
	assert.ErrorIs(t, service.Delete(context.Background(), created.Uid), ErrQuotationNotFound)
}
