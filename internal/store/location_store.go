package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nbouch/roombrowse/internal/domain"
)

type LocationStore struct {
	db *sql.DB
}

func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db}
}

// Create inserts a new location. A duplicate name yields ErrDuplicate; the
// UNIQUE constraint makes the check atomic under concurrent inserts.
func (s *LocationStore) Create(ctx context.Context, name string) (*domain.Location, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO locations (name) VALUES (?)
	`, name)
	if err != nil {
		if mapped := mapConstraint(err); errors.Is(mapped, ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return &domain.Location{ID: id, Name: name}, nil
}

func (s *LocationStore) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	loc := &domain.Location{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name FROM locations WHERE id = ?
	`, id).Scan(&loc.ID, &loc.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return loc, nil
}

func (s *LocationStore) GetByName(ctx context.Context, name string) (*domain.Location, error) {
	loc := &domain.Location{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name FROM locations WHERE name = ?
	`, name).Scan(&loc.ID, &loc.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return loc, nil
}

func (s *LocationStore) List(ctx context.Context) ([]*domain.Location, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name FROM locations ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	return scanLocations(rows)
}

// SearchNames returns the names of locations containing query, ignoring
// case. An empty query matches every location.
func (s *LocationStore) SearchNames(ctx context.Context, query string) ([]string, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM locations WHERE LOWER(name) LIKE ? ORDER BY name ASC
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search locations: %w", err)
	}
	defer rows.Close()

	return scanNames(rows)
}

// DeleteCascade removes the location and every room referencing it in a
// single transaction, so no reader observes a half-deleted state. It returns
// the number of rooms removed alongside the location.
func (s *LocationStore) DeleteCascade(ctx context.Context, id int64) (*domain.Location, int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	loc := &domain.Location{}
	err = tx.QueryRowContext(ctx, `
		SELECT id, name FROM locations WHERE id = ?
	`, id).Scan(&loc.ID, &loc.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get location: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE location_id = ?`, id)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to delete rooms for location: %w", err)
	}
	roomsRemoved, err := result.RowsAffected()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id); err != nil {
		return nil, 0, fmt.Errorf("failed to delete location: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit cascade delete: %w", err)
	}

	return loc, roomsRemoved, nil
}

func scanLocations(rows *sql.Rows) ([]*domain.Location, error) {
	var locations []*domain.Location
	for rows.Next() {
		loc := &domain.Location{}
		if err := rows.Scan(&loc.ID, &loc.Name); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}
	return locations, nil
}

func scanNames(rows *sql.Rows) ([]string, error) {
	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating names: %w", err)
	}
	return names, nil
}
