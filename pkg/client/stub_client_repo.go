package client

import "context"

type StubClientRepo struct {
	nextId int
	data   map[string]Client
}

func NewStubClientRepo() *StubClientRepo {
	return &StubClientRepo{data: map[string]Client{}}
}

func (s *StubClientRepo) Store(ctx context.Context, client Client) (int, error) {
	s.nextId++
	client.Id = s.nextId
	s.data[client.Uid] = client
	return client.Id, nil
}

func (s *StubClientRepo) FindByUid(ctx context.Context, uid string) (*Client, error) {
	if c, ok := s.data[uid]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *StubClientRepo) GetAll(ctx context.Context) ([]Client, error) {
	clients := make([]Client, 0, len(s.data))
	for _, c := range s.data {
		clients = append(clients, c)
	}
	return clients, nil
}

func (s *StubClientRepo) Update(ctx context.Context, client Client) (bool, error) {
	existing, ok := s.data[client.Uid]
	if !ok {
		return false, nil
	}
	client.Id = existing.Id
	s.data[client.Uid] = client
	return true, nil
}

func (s *StubClientRepo) Delete(ctx context.Context, uid string) (bool, error) {
	if _, ok := s.data[uid]; !ok {
		return false, nil
	}
	delete(s.data, uid)
	return true, nil
}

func (s *StubClientRepo) Cleanup() {
	s.data = map[string]Client{}
}
