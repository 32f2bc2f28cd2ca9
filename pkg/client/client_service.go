package client

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrClientDataInvalid = errors.New("client data invalid")
)

type Service interface {
	Create(ctx context.Context, client Client) (Client, error)
	Get(ctx context.Context, uid string) (Client, error)
	GetAll(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, client Client) (Client, error)
	Delete(ctx context.Context, uid string) error
}

type ServiceImpl struct {
	repo ClientRepo
}

func NewService(repo ClientRepo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, client Client) (Client, error) {
	if client.Name == "" {
		return Client{}, ErrClientDataInvalid
	}
	client.Uid = uuid.NewString()
	id, err := s.repo.Store(ctx, client)
	if err != nil {
		return Client{}, err
	}
	client.Id = id
	return client, nil
}

func (s *ServiceImpl) Get(ctx context.Context, uid string) (Client, error) {
	client, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return Client{}, err
	}
	if client == nil {
		return Client{}, ErrClientNotFound
	}
	return *client, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Client, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Update(ctx context.Context, client Client) (Client, error) {
	if client.Name == "" {
		return Client{}, ErrClientDataInvalid
	}
	updated, err := s.repo.Update(ctx, client)
	if err != nil {
		return Client{}, err
	}
	if !updated {
		log.Warnf("client not updated, probably because it does not exist (%s)", client.Uid)
		return Client{}, ErrClientNotFound
	}
	return s.Get(ctx, client.Uid)
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) error {
	deleted, err := s.repo.Delete(ctx, uid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrClientNotFound
	}
	return nil
}
