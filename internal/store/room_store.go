package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nbouch/roombrowse/internal/domain"
)

type RoomStore struct {
	db *sql.DB
}

func NewRoomStore(db *sql.DB) *RoomStore {
	return &RoomStore{db: db}
}

const roomColumns = `id, name, description, capacity, booking_contact, booking_email, location_id`

// Create inserts a new room after verifying the target location exists. Both
// steps run in one transaction so the location cannot disappear between the
// check and the insert. A duplicate room name yields ErrDuplicate, a missing
// location ErrNotFound.
func (s *RoomStore) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var locationID int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM locations WHERE id = ?
	`, room.LocationID).Scan(&locationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to verify location: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO rooms (name, description, capacity, booking_contact, booking_email, location_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, room.Name, room.Description, room.Capacity, room.BookingContact, room.BookingEmail, room.LocationID)
	if err != nil {
		if mapped := mapConstraint(err); errors.Is(mapped, ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit room create: %w", err)
	}

	created := *room
	created.ID = id
	return &created, nil
}

func (s *RoomStore) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	room := &domain.Room{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+roomColumns+` FROM rooms WHERE id = ?
	`, id).Scan(&room.ID, &room.Name, &room.Description, &room.Capacity,
		&room.BookingContact, &room.BookingEmail, &room.LocationID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

func (s *RoomStore) List(ctx context.Context) ([]*domain.Room, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+roomColumns+` FROM rooms ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

func (s *RoomStore) ListByLocationID(ctx context.Context, locationID int64) ([]*domain.Room, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+roomColumns+` FROM rooms WHERE location_id = ? ORDER BY name ASC
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms by location: %w", err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

// SearchNames returns the names of rooms containing query, ignoring case.
// An empty query matches every room.
func (s *RoomStore) SearchNames(ctx context.Context, query string) ([]string, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM rooms WHERE LOWER(name) LIKE ? ORDER BY name ASC
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search rooms: %w", err)
	}
	defer rows.Close()

	return scanNames(rows)
}

func (s *RoomStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM rooms WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
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

func scanRooms(rows *sql.Rows) ([]*domain.Room, error) {
	var rooms []*domain.Room
	for rows.Next() {
		room := &domain.Room{}
		if err := rows.Scan(&room.ID, &room.Name, &room.Description, &room.Capacity,
			&room.BookingContact, &room.BookingEmail, &room.LocationID); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rooms: %w", err)
	}
	return rooms, nil
}
