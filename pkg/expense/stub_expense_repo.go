package expense

import (
	"context"
	"sort"
	"time"
)

type StubExpenseRepo struct {
	nextId int
	data   map[string]Expense
}

func NewStubExpenseRepo() *StubExpenseRepo {
	return &StubExpenseRepo{data: map[string]Expense{}}
}

func (s *StubExpenseRepo) Store(ctx context.Context, expense Expense) (int, error) {
	s.nextId++
	expense.Id = s.nextId
	s.data[expense.Uid] = expense
	return expense.Id, nil
}

func (s *StubExpenseRepo) FindByUid(ctx context.Context, uid string) (*Expense, error) {
	if e, ok := s.data[uid]; ok {
		return &e, nil
	}
	return nil, nil
}

func (s *StubExpenseRepo) GetAll(ctx context.Context) ([]Expense, error) {
	expenses := make([]Expense, 0, len(s.data))
	for _, e := range s.data {
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func (s *StubExpenseRepo) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]Expense, error) {
	var expenses []Expense
	for _, e := range s.data {
		if !e.CreatedAt.Before(from) && e.CreatedAt.Before(to) {
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].CreatedAt.Before(expenses[j].CreatedAt)
	})
	return expenses, nil
}

func (s *StubExpenseRepo) Update(ctx context.Context, expense Expense) (bool, error) {
	existing, ok := s.data[expense.Uid]
	if !ok {
		return false, nil
	}
	expense.Id = existing.Id
	expense.QuotationId = existing.QuotationId
	expense.TicketId = existing.TicketId
	expense.CreatedAt = existing.CreatedAt
	s.data[expense.Uid] = expense
	return true, nil
}

func (s *StubExpenseRepo) Delete(ctx context.Context, uid string) (bool, error) {
	if _, ok := s.data[uid]; !ok {
		return false, nil
	}
	delete(s.data, uid)
	return true, nil
}

func (s *StubExpenseRepo) Cleanup() {
	s.data = map[string]Expense{}
}
