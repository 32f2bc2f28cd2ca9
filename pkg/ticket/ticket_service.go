package ticket

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrTicketDataInvalid = errors.New("ticket data invalid")
	ErrBadTransition     = errors.New("invalid ticket status transition")
)

type Service interface {
	Create(ctx context.Context, ticket Ticket) (Ticket, error)
	Get(ctx context.Context, uid string) (Ticket, error)
	GetAll(ctx context.Context, filter Filter) ([]Ticket, error)
	Update(ctx context.Context, ticket Ticket) (Ticket, error)
	Delete(ctx context.Context, uid string) error
}

type ServiceImpl struct {
	repo TicketRepo
}

func NewService(repo TicketRepo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, ticket Ticket) (Ticket, error) {
	if ticket.Title == "" || ticket.ClientId == 0 {
		return Ticket{}, ErrTicketDataInvalid
	}
	ticket.Uid = uuid.NewString()
	ticket.Status = StatusOpen
	id, err := s.repo.Store(ctx, ticket)
	if err != nil {
		return Ticket{}, err
	}
	ticket.Id = id
	return ticket, nil
}

func (s *ServiceImpl) Get(ctx context.Context, uid string) (Ticket, error) {
	ticket, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return Ticket{}, err
	}
	if ticket == nil {
		return Ticket{}, ErrTicketNotFound
	}
	return *ticket, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context, filter Filter) ([]Ticket, error) {
	return s.repo.GetAll(ctx, filter)
}

func (s *ServiceImpl) Update(ctx context.Context, ticket Ticket) (Ticket, error) {
	if ticket.Title == "" {
		return Ticket{}, ErrTicketDataInvalid
	}
	current, err := s.Get(ctx, ticket.Uid)
	if err != nil {
		return Ticket{}, err
	}
	if !transitionAllowed(current.Status, ticket.Status) {
		return Ticket{}, fmt.Errorf("%w: %s -> %s", ErrBadTransition, current.Status, ticket.Status)
	}

	updated, err := s.repo.Update(ctx, ticket)
	if err != nil {
		return Ticket{}, err
	}
	if !updated {
		log.Warnf("ticket not updated, probably because it does not exist (%s)", ticket.Uid)
		return Ticket{}, ErrTicketNotFound
	}
	return s.Get(ctx, ticket.Uid)
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) error {
	deleted, err := s.repo.Delete(ctx, uid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTicketNotFound
	}
	return nil
}

// transitionAllowed encodes the ticket lifecycle: open -> in_progress ->
// resolved -> closed, with reopening allowed until a ticket is closed.
func transitionAllowed(from, to TicketStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusOpen:
		return to == StatusInProgress || to == StatusClosed
	case StatusInProgress:
		return to == StatusOpen || to == StatusResolved
	case StatusResolved:
		return to == StatusInProgress || to == StatusClosed
	case StatusClosed:
		return false
	}
	return false
}
