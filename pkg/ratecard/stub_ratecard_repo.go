package ratecard

import (
	"context"
	"sort"
)

type StubRateCardRepo struct {
	nextId int
	data   map[string]RateCard
}

func NewStubRateCardRepo() *StubRateCardRepo {
	return &StubRateCardRepo{data: map[string]RateCard{}}
}

func (s *StubRateCardRepo) Store(ctx context.Context, card RateCard) (int, error) {
	s.nextId++
	card.Id = s.nextId
	s.data[card.Uid] = card
	return card.Id, nil
}

func (s *StubRateCardRepo) FindByUid(ctx context.Context, uid string) (*RateCard, error) {
	if c, ok := s.data[uid]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *StubRateCardRepo) GetAll(ctx context.Context, activeOnly bool) ([]RateCard, error) {
	cards := make([]RateCard, 0, len(s.data))
	for _, c := range s.data {
		if activeOnly && !c.Active {
			continue
		}
		cards = append(cards, c)
	}
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].Name < cards[j].Name
	})
	return cards, nil
}

func (s *StubRateCardRepo) Update(ctx context.Context, card RateCard) (bool, error) {
	existing, ok := s.data[card.Uid]
	if !ok {
		return false, nil
	}
	card.Id = existing.Id
	card.CreatedAt = existing.CreatedAt
	s.data[card.Uid] = card
	return true, nil
}

func (s *StubRateCardRepo) Delete(ctx context.Context, uid string) (bool, error) {
	if _, ok := s.data[uid]; !ok {
		return false, nil
	}
	delete(s.data, uid)
	return true, nil
}

func (s *StubRateCardRepo) Cleanup() {
	s.data = map[string]RateCard{}
}
