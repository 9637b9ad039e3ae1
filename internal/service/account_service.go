package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nbouch/roombrowse/internal/auth"
	"github.com/nbouch/roombrowse/internal/domain"
	"github.com/nbouch/roombrowse/internal/store"
)

var (
	// ErrBadCredentials is returned for both unknown emails and wrong
	// passwords so login failures do not reveal which field was wrong.
	ErrBadCredentials = errors.New("email or password incorrect")
	// ErrSelfDelete is returned when a user tries to remove the account
	// they are logged in as.
	ErrSelfDelete = errors.New("cannot delete current user account")
	// ErrMissingPassword is returned when a new user is created without a
	// password.
	ErrMissingPassword = errors.New("password required")
)

// userRepository is the subset of store.UserStore that AccountService
// requires.
type userRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, email string) error
}

// AccountService owns user accounts and login verification.
type AccountService struct {
	userStore userRepository
	logger    *slog.Logger
}

func NewAccountService(userStore userRepository, logger *slog.Logger) *AccountService {
	return &AccountService{userStore: userStore, logger: logger}
}

// Login verifies the credentials and returns the user. Unknown email and
// wrong password both yield ErrBadCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.Verify(user, password) {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// CreateUser derives credentials for a new user and persists it. The
// plaintext password never reaches the store.
func (s *AccountService) CreateUser(ctx context.Context, firstName, lastName, email, password string) (*domain.User, error) {
	if password == "" {
		return nil, ErrMissingPassword
	}

	user, err := auth.NewUser(firstName, lastName, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user created", "email", user.Email)
	return user, nil
}

// RemoveUser deletes the user identified by email. Deleting the account the
// caller is authenticated as is refused, so at least one working login
// always survives the operation.
func (s *AccountService) RemoveUser(ctx context.Context, email, currentEmail string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.Email == currentEmail {
		return nil, ErrSelfDelete
	}
	if err := s.userStore.Delete(ctx, email); err != nil {
		return nil, err
	}
	s.logger.Info("user removed", "email", email)
	return user, nil
}

func (s *AccountService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.List(ctx)
}

// GetUser looks a user up by email, for session principals.
func (s *AccountService) GetUser(ctx context.Context, email string) (*domain.User, error) {
	return s.userStore.GetByEmail(ctx, email)
}
