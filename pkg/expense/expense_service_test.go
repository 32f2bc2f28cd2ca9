package expense

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func money(value int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(value), Valid: true}
}

func TestCreate(t *testing.T) {
	service := NewService(NewStubExpenseRepo())

	created, err := service.Create(context.Background(), Expense{
		Amount:      money(4000),
		Category:    CategoryLabor,
		Description: "Two technicians, full day",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.Uid)
	assert.NotZero(t, created.Id)
}

func TestCreate_RequiresCategory(t *testing.T) {
	service := NewService(NewStubExpenseRepo())

	_, err := service.Create(context.Background(), Expense{Amount: money(100)})
	assert.ErrorIs(t, err, ErrExpenseDataInvalid)
}

func TestCreate_RejectsNegativeAmount(t *testing.T) {
	service := NewService(NewStubExpenseRepo())

	_, err := service.Create(context.Background(), Expense{Amount: money(-1), Category: CategoryOther})
	assert.ErrorIs(t, err, ErrExpenseDataInvalid)
}

func TestCreate_AllowsNullAmount(t *testing.T) {
	service := NewService(NewStubExpenseRepo())

	created, err := service.Create(context.Background(), Expense{Category: CategoryTransport})

	assert.NoError(t, err)
	assert.False(t, created.Amount.Valid)
}

func TestParseCategory(t *testing.T) {
	category, err := ParseCategory("MATERIAL")
	assert.NoError(t, err)
	assert.Equal(t, CategoryMaterial, category)

	_, err = ParseCategory("FOOD")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestUpdate_NotFound(t *testing.T) {
	service := NewService(NewStubExpenseRepo())

	_, err := service.Update(context.Background(), Expense{Uid: "missing", Category: CategoryOther})
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestDelete(t *testing.T) {
	service := NewService(NewStubExpenseRepo())
	created, err := service.Create(context.Background(), Expense{Category: CategoryLabor})
	assert.NoError(t, err)

	assert.NoError(t, service.Delete(context.Background(), created.Uid))
	assert.ErrorIs(t, service.Delete(context.Background(), created.Uid), ErrExpenseNotFound)
}
