package quotation

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldkeep/fieldkeep/internal/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrQuotationNotFound    = errors.New("quotation not found")
	ErrQuotationDataInvalid = errors.New("quotation data invalid")
)

type Service interface {
	Create(ctx context.Context, quotation Quotation) (Quotation, error)
	Get(ctx context.Context, uid string) (Quotation, error)
	GetAll(ctx context.Context) ([]Quotation, error)
	Update(ctx context.Context, quotation Quotation) (Quotation, error)
	Delete(ctx context.Context, uid string) error
}

type ServiceImpl struct {
	repo  QuotationRepo
	clock utils.Clock
}

func NewService(repo QuotationRepo) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: &utils.SystemClock{}}
}

func (s *ServiceImpl) Create(ctx context.Context, quotation Quotation) (Quotation, error) {
	if quotation.ClientId == 0 {
		return Quotation{}, ErrQuotationDataInvalid
	}
	if quotation.GrandTotal.Valid && quotation.GrandTotal.Decimal.IsNegative() {
		return Quotation{}, ErrQuotationDataInvalid
	}
	quotation.Uid = uuid.NewString()
	quotation.Status = StatusDraft
	if quotation.Number == "" {
		quotation.Number = s.nextNumber()
	}
	id, err := s.repo.Store(ctx, quotation)
	if err != nil {
		return Quotation{}, err
	}
	quotation.Id = id
	return quotation, nil
}

func (s *ServiceImpl) Get(ctx context.Context, uid string) (Quotation, error) {
	quotation, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return Quotation{}, err
	}
	if quotation == nil {
		return Quotation{}, ErrQuotationNotFound
	}
	return *quotation, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Quotation, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Update(ctx context.Context, quotation Quotation) (Quotation, error) {
	if quotation.GrandTotal.Valid && quotation.GrandTotal.Decimal.IsNegative() {
		return Quotation{}, ErrQuotationDataInvalid
	}
	updated, err := s.repo.Update(ctx, quotation)
	if err != nil {
		return Quotation{}, err
	}
	if !updated {
		log.Warnf("quotation not updated, probably because it does not exist (%s)", quotation.Uid)
		return Quotation{}, ErrQuotationNotFound
	}
	return s.Get(ctx, quotation.Uid)
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) error {
	deleted, err := s.repo.Delete(ctx, uid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrQuotationNotFound
	}
	return nil
}

// nextNumber produces a human-readable quotation number. Uniqueness is
// enforced by the database constraint, not here.
func (s *ServiceImpl) nextNumber() string {
	now := s.clock.Now()
	return fmt.Sprintf("Q-%s-%s", now.Format("20060102"), uuid.NewString()[:8])
}
