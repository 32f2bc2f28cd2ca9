package quotation

import (
	"context"
	"sort"
	"time"
)

type StubQuotationRepo struct {
	nextId int
	data   map[string]Quotation
}

func NewStubQuotationRepo() *StubQuotationRepo {
	return &StubQuotationRepo{data: map[string]Quotation{}}
}

func (s *StubQuotationRepo) Store(ctx context.Context, quotation Quotation) (int, error) {
	s.nextId++
	quotation.Id = s.nextId
	s.data[quotation.Uid] = quotation
	return quotation.Id, nil
}

func (s *StubQuotationRepo) FindByUid(ctx context.Context, uid string) (*Quotation, error) {
	if q, ok := s.data[uid]; ok {
		return &q, nil
	}
	return nil, nil
}

func (s *StubQuotationRepo) GetAll(ctx context.Context) ([]Quotation, error) {
	quotations := make([]Quotation, 0, len(s.data))
	for _, q := range s.data {
		quotations = append(quotations, q)
	}
	return quotations, nil
}

func (s *StubQuotationRepo) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]Quotation, error) {
	var quotations []Quotation
	for _, q := range s.data {
		if !q.CreatedAt.Before(from) && q.CreatedAt.Before(to) {
			quotations = append(quotations, q)
		}
	}
	sort.Slice(quotations, func(i, j int) bool {
		return quotations[i].CreatedAt.Before(quotations[j].CreatedAt)
	})
	return quotations, nil
}

func (s *StubQuotationRepo) Update(ctx context.Context, quotation Quotation) (bool, error) {
	existing, ok := s.data[quotation.Uid]
	if !ok {
		return false, nil
	}
	quotation.Id = existing.Id
	quotation.ClientId = existing.ClientId
	quotation.TicketId = existing.TicketId
	quotation.CreatedAt = existing.CreatedAt
	s.data[quotation.Uid] = quotation
	return true, nil
}

func (s *StubQuotationRepo) Delete(ctx context.Context, uid string) (bool, error) {
	if _, ok := s.data[uid]; !ok {
		return false, nil
	}
	delete(s.data, uid)
	return true, nil
}

func (s *StubQuotationRepo) Cleanup() {
	s.data = map[string]Quotation{}
}
