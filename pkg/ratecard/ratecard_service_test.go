package ratecard

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestCard() RateCard {
	return RateCard{
		Name:      "Technician hour",
		Category:  "LABOR",
		Unit:      "hour",
		UnitPrice: decimal.NewFromInt(120),
	}
}

func TestCreate(t *testing.T) {
	service := NewService(NewStubRateCardRepo())

	created, err := service.Create(context.Background(), newTestCard())

	assert.NoError(t, err)
	assert.NotEmpty(t, created.Uid)
	assert.True(t, created.Active)
}

func TestCreate_Validation(t *testing.T) {
	service := NewService(NewStubRateCardRepo())

	card := newTestCard()
	card.Name = ""
	_, err := service.Create(context.Background(), card)
	assert.ErrorIs(t, err, ErrRateCardDataInvalid)

	card = newTestCard()
	card.Unit = ""
	_, err = service.Create(context.Background(), card)
	assert.ErrorIs(t, err, ErrRateCardDataInvalid)

	card = newTestCard()
	card.UnitPrice = decimal.NewFromInt(-1)
	_, err = service.Create(context.Background(), card)
	assert.ErrorIs(t, err, ErrRateCardDataInvalid)
}

func TestGetAll_ActiveOnly(t *testing.T) {
	service := NewService(NewStubRateCardRepo())
	active, err := service.Create(context.Background(), newTestCard())
	assert.NoError(t, err)

	retired := newTestCard()
	retired.Name = "Old technician rate"
	created, err := service.Create(context.Background(), retired)
	assert.NoError(t, err)
	created.Active = false
	_, err = service.Update(context.Background(), created)
	assert.NoError(t, err)

	cards, err := service.GetAll(context.Background(), true)
	assert.NoError(t, err)
	assert.Len(t, cards, 1)
	assert.Equal(t, active.Uid, cards[0].Uid)

	cards, err = service.GetAll(context.Background(), false)
	assert.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestUpdate_NotFound(t *testing.T) {
	service := NewService(NewStubRateCardRepo())

	card := newTestCard()
	card.Uid = "missing"
	_, err := service.Update(context.Background(), card)
	assert.ErrorIs(t, err, ErrRateCardNotFound)
}

func TestDelete(t *testing.T) {
	service := NewService(NewStubRateCardRepo())
	created, err := service.Create(context.Background(), newTestCard())
	assert.NoError(t, err)

	assert.NoError(t, service.Delete(context.Background(), created.Uid))
	assert.ErrorIs(t, service.Delete(context.Background(), created.Uid), ErrRateCardNotFound)
}
