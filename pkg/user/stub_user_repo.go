package user

import (
	"context"
)

type StubUserRepo struct {
	nextId int
	data   map[string]User
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{nextId: 0, data: map[string]User{}}
}

func (s *StubUserRepo) Store(ctx context.Context, user User) (int, error) {
	s.nextId++
	user.Id = s.nextId
	s.data[user.Uid] = user
	return user.Id, nil
}

func (s *StubUserRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range s.data {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *StubUserRepo) FindByUid(ctx context.Context, uid string) (*User, error) {
	if u, ok := s.data[uid]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *StubUserRepo) GetAll(ctx context.Context) ([]User, error) {
	users := make([]User, 0, len(s.data))
	for _, u := range s.data {
		users = append(users, u)
	}
	return users, nil
}

func (s *StubUserRepo) Update(ctx context.Context, user User) (bool, error) {
	existing, ok := s.data[user.Uid]
	if !ok {
		return false, nil
	}
	user.Id = existing.Id
	user.PasswordHash = existing.PasswordHash
	s.data[user.Uid] = user
	return true, nil
}

func (s *StubUserRepo) Delete(ctx context.Context, uid string) (bool, error) {
	if _, ok := s.data[uid]; !ok {
		return false, nil
	}
	delete(s.data, uid)
	return true, nil
}

func (s *StubUserRepo) Cleanup() {
	s.data = map[string]User{}
}
