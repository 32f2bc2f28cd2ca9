package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldkeep/fieldkeep/internal/auth"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrUserDataInvalid = errors.New("user data invalid")
)

type Service interface {
	CreateUser(ctx context.Context, user User, password string) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	DeleteUser(ctx context.Context, uid string) error
	Authenticate(ctx context.Context, username, password string) (auth.Session, error)
}

type ServiceImpl struct {
	repo UserRepo
}

func NewUserService(repo UserRepo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateUser(ctx context.Context, user User, password string) (User, error) {
	if user.Username == "" || password == "" {
		return User{}, ErrUserDataInvalid
	}
	existing, err := s.repo.FindByUsername(ctx, user.Username)
	if err != nil {
		return User{}, err
	}
	if existing != nil {
		return User{}, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, fmt.Errorf("could not hash password: %w", err)
	}
	user.Uid = uuid.NewString()
	user.PasswordHash = hash

	id, err := s.repo.Store(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = id
	return user, nil
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	user, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return User{}, err
	}
	if user == nil {
		return User{}, ErrUserNotFound
	}
	return *user, nil
}

func (s *ServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return User{}, err
	}
	if !updated {
		log.Warnf("user not updated, probably because it does not exist (%s)", user.Uid)
		return User{}, ErrUserNotFound
	}
	return s.GetUserByUid(ctx, user.Uid)
}

func (s *ServiceImpl) DeleteUser(ctx context.Context, uid string) error {
	deleted, err := s.repo.Delete(ctx, uid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}

// Authenticate verifies credentials and resolves them to a session. A missing
// user and a wrong password are indistinguishable to the caller.
func (s *ServiceImpl) Authenticate(ctx context.Context, username, password string) (auth.Session, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return auth.Session{}, err
	}
	if user == nil {
		return auth.Session{}, auth.ErrInvalidCredentials
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return auth.Session{}, err
	}
	return auth.Session{
		UserID:   user.Id,
		UserUID:  user.Uid,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
