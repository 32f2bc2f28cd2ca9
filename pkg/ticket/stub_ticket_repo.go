package ticket

import "context"

type StubTicketRepo struct {
	nextId int
	data   map[string]Ticket
}

func NewStubTicketRepo() *StubTicketRepo {
	return &StubTicketRepo{data: map[string]Ticket{}}
}

func (s *StubTicketRepo) Store(ctx context.Context, ticket Ticket) (int, error) {
	s.nextId++
	ticket.Id = s.nextId
	s.data[ticket.Uid] = ticket
	return ticket.Id, nil
}

func (s *StubTicketRepo) FindByUid(ctx context.Context, uid string) (*Ticket, error) {
	if t, ok := s.data[uid]; ok {
		return &t, nil
	}
	return nil, nil
}

func (s *StubTicketRepo) GetAll(ctx context.Context, filter Filter) ([]Ticket, error) {
	tickets := make([]Ticket, 0, len(s.data))
	for _, t := range s.data {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.ClientId != 0 && t.ClientId != filter.ClientId {
			continue
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (s *StubTicketRepo) Update(ctx context.Context, ticket Ticket) (bool, error) {
	existing, ok := s.data[ticket.Uid]
	if !ok {
		return false, nil
	}
	ticket.Id = existing.Id
	ticket.ClientId = existing.ClientId
	ticket.CreatedAt = existing.CreatedAt
	s.data[ticket.Uid] = ticket
	return true, nil
}

func (s *StubTicketRepo) Delete(ctx context.Context, uid string) (bool, error) {
	if _, ok := s.data[uid]; !ok {
		return false, nil
	}
	delete(s.data, uid)
	return true, nil
}

func (s *StubTicketRepo) Cleanup() {
	s.data = map[string]Ticket{}
}
