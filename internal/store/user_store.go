package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nbouch/roombrowse/internal/domain"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create persists a user built by the credential engine. A duplicate email
// yields ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, first_name, last_name, pw_hash, salt)
		VALUES (?, ?, ?, ?, ?)
	`, user.Email, user.FirstName, user.LastName, user.PwHash, user.Salt)
	if err != nil {
		if mapped := mapConstraint(err); errors.Is(mapped, ErrDuplicate) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT email, first_name, last_name, pw_hash, salt FROM users WHERE email = ?
	`, email).Scan(&user.Email, &user.FirstName, &user.LastName, &user.PwHash, &user.Salt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT email, first_name, last_name, pw_hash, salt FROM users ORDER BY email ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		if err := rows.Scan(&user.Email, &user.FirstName, &user.LastName, &user.PwHash, &user.Salt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

func (s *UserStore) Delete(ctx context.Context, email string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM users WHERE email = ?
	`, email)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
