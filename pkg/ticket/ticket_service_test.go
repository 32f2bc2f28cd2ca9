package ticket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestTicket(t *testing.T, service *ServiceImpl) Ticket {
	t.Helper()
	created, err := service.Create(context.Background(), Ticket{
		ClientId: 1,
		Title:    "Broken AC unit",
	})
	assert.NoError(t, err)
	return created
}

func TestCreate_StartsOpen(t *testing.T) {
	service := NewService(NewStubTicketRepo())

	created, err := service.Create(context.Background(), Ticket{
		ClientId: 1,
		Title:    "Broken AC unit",
		Status:   StatusClosed,
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusOpen, created.Status)
	assert.NotEmpty(t, created.Uid)
}

func TestCreate_RequiresTitleAndClient(t *testing.T) {
	service := NewService(NewStubTicketRepo())

	_, err := service.Create(context.Background(), Ticket{ClientId: 1})
	assert.ErrorIs(t, err, ErrTicketDataInvalid)

	_, err = service.Create(context.Background(), Ticket{Title: "No client"})
	assert.ErrorIs(t, err, ErrTicketDataInvalid)
}

func TestUpdate_AllowedTransitions(t *testing.T) {
	service := NewService(NewStubTicketRepo())
	ticket := newTestTicket(t, service)

	steps := []TicketStatus{StatusInProgress, StatusResolved, StatusInProgress, StatusResolved, StatusClosed}
	for _, status := range steps {
		ticket.Status = status
		updated, err := service.Update(context.Background(), ticket)
		assert.NoError(t, err, "transition to %s", status)
		assert.Equal(t, status, updated.Status)
		ticket = updated
	}
}

func TestUpdate_RejectsSkippingTransition(t *testing.T) {
	service := NewService(NewStubTicketRepo())
	ticket := newTestTicket(t, service)

	ticket.Status = StatusResolved
	_, err := service.Update(context.Background(), ticket)
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestUpdate_ClosedIsTerminal(t *testing.T) {
	service := NewService(NewStubTicketRepo())
	ticket := newTestTicket(t, service)

	ticket.Status = StatusClosed
	closed, err := service.Update(context.Background(), ticket)
	assert.NoError(t, err)

	for _, status := range []TicketStatus{StatusOpen, StatusInProgress, StatusResolved} {
		closed.Status = status
		_, err := service.Update(context.Background(), closed)
		assert.ErrorIs(t, err, ErrBadTransition, "reopened closed ticket to %s", status)
		closed.Status = StatusClosed
	}
}

func TestUpdate_SameStatusIsNoop(t *testing.T) {
	service := NewService(NewStubTicketRepo())
	ticket := newTestTicket(t, service)

	ticket.Title = "Broken AC unit, urgent"
	updated, err := service.Update(context.Background(), ticket)

	assert.NoError(t, err)
	assert.Equal(t, StatusOpen, updated.Status)
	assert.Equal(t, "Broken AC unit, urgent", updated.Title)
}

func TestUpdate_NotFound(t *testing.T) {
	service := NewService(NewStubTicketRepo())

	_, err := service.Update(context.Background(), Ticket{Uid: "missing", Title: "x", Status: StatusOpen})
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestGetAll_Filtered(t *testing.T) {
	repo := NewStubTicketRepo()
	service := NewService(repo)
	first := newTestTicket(t, service)
	second, err := service.Create(context.Background(), Ticket{ClientId: 2, Title: "Leaking pipe"})
	assert.NoError(t, err)

	first.Status = StatusInProgress
	_, err = service.Update(context.Background(), first)
	assert.NoError(t, err)

	tickets, err := service.GetAll(context.Background(), Filter{Status: StatusOpen})
	assert.NoError(t, err)
	assert.Len(t, tickets, 1)
	assert.Equal(t, second.Uid, tickets[0].Uid)

	tickets, err = service.GetAll(context.Background(), Filter{ClientId: 2})
	assert.NoError(t, err)
	assert.Len(t, tickets, 1)
	assert.Equal(t, second.Uid, tickets[0].Uid)
}

func TestDelete(t *testing.T) {
	service := NewService(NewStubTicketRepo())
	ticket := newTestTicket(t, service)

	assert.NoError(t, service.Delete(context.Background(), ticket.Uid))
	assert.ErrorIs(t, service.Delete(context.Background(), ticket.Uid), ErrTicketNotFound)
}
