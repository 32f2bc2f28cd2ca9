package ratecard

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrRateCardNotFound    = errors.New("rate card not found")
	ErrRateCardDataInvalid = errors.New("rate card data invalid")
)

type Service interface {
	Create(ctx context.Context, card RateCard) (RateCard, error)
	Get(ctx context.Context, uid string) (RateCard, error)
	GetAll(ctx context.Context, activeOnly bool) ([]RateCard, error)
	Update(ctx context.Context, card RateCard) (RateCard, error)
	Delete(ctx context.Context, uid string) error
}

type ServiceImpl struct {
	repo RateCardRepo
}

func NewService(repo RateCardRepo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, card RateCard) (RateCard, error) {
	if err := validate(card); err != nil {
		return RateCard{}, err
	}
	card.Uid = uuid.NewString()
	card.Active = true
	id, err := s.repo.Store(ctx, card)
	if err != nil {
		return RateCard{}, err
	}
	card.Id = id
	return card, nil
}

func (s *ServiceImpl) Get(ctx context.Context, uid string) (RateCard, error) {
	card, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return RateCard{}, err
	}
	if card == nil {
		return RateCard{}, ErrRateCardNotFound
	}
	return *card, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context, activeOnly bool) ([]RateCard, error) {
	return s.repo.GetAll(ctx, activeOnly)
}

func (s *ServiceImpl) Update(ctx context.Context, card RateCard) (RateCard, error) {
	if err := validate(card); err != nil {
		return RateCard{}, err
	}
	updated, err := s.repo.Update(ctx, card)
	if err != nil {
		return RateCard{}, err
	}
	if !updated {
		log.Warnf("rate card not updated, probably because it does not exist (%s)", card.Uid)
		return RateCard{}, ErrRateCardNotFound
	}
	return s.Get(ctx, card.Uid)
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) error {
	deleted, err := s.repo.Delete(ctx, uid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRateCardNotFound
	}
	return nil
}

func validate(card RateCard) error {
	if card.Name == "" || card.Unit == "" {
		return ErrRateCardDataInvalid
	}
	if card.UnitPrice.IsNegative() {
		return ErrRateCardDataInvalid
	}
	return nil
}
