package expense

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrExpenseDataInvalid = errors.New("expense data invalid")
)

type Service interface {
	Create(ctx context.Context, expense Expense) (Expense, error)
	Get(ctx context.Context, uid string) (Expense, error)
	GetAll(ctx context.Context) ([]Expense, error)
	Update(ctx context.Context, expense Expense) (Expense, error)
	Delete(ctx context.Context, uid string) error
}

type ServiceImpl struct {
	repo ExpenseRepo
}

func NewService(repo ExpenseRepo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	if expense.Category == "" {
		return Expense{}, ErrExpenseDataInvalid
	}
	if expense.Amount.Valid && expense.Amount.Decimal.IsNegative() {
		return Expense{}, ErrExpenseDataInvalid
	}
	expense.Uid = uuid.NewString()
	id, err := s.repo.Store(ctx, expense)
	if err != nil {
		return Expense{}, err
	}
	expense.Id = id
	return expense, nil
}

func (s *ServiceImpl) Get(ctx context.Context, uid string) (Expense, error) {
	expense, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return Expense{}, err
	}
	if expense == nil {
		return Expense{}, ErrExpenseNotFound
	}
	return *expense, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Expense, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Update(ctx context.Context, expense Expense) (Expense, error) {
	if expense.Amount.Valid && expense.Amount.Decimal.IsNegative() {
		return Expense{}, ErrExpenseDataInvalid
	}
	updated, err := s.repo.Update(ctx, expense)
	if err != nil {
		return Expense{}, err
	}
	if !updated {
		log.Warnf("expense not updated, probably because it does not exist (%s)", expense.Uid)
		return Expense{}, ErrExpenseNotFound
	}
	return s.Get(ctx, expense.Uid)
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) error {
	deleted, err := s.repo.Delete(ctx, uid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}
