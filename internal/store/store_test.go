package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nbouch/roombrowse/internal/db"
	"github.com/nbouch/roombrowse/internal/domain"
)

// openTestDB opens a migrated database in a per-test temp dir.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// mustCreateLocation seeds a location for room tests.
func mustCreateLocation(t *testing.T, d *sql.DB, name string) *domain.Location {
	t.Helper()
	loc, err := NewLocationStore(d).Create(context.Background(), name)
	require.NoError(t, err)
	return loc
}

// mustCreateRoom seeds a room with sensible defaults.
func mustCreateRoom(t *testing.T, d *sql.DB, name string, locationID int64) *domain.Room {
	t.Helper()
	room, err := NewRoomStore(d).Create(context.Background(), &domain.Room{
		Name:       name,
		Capacity:   10,
		LocationID: locationID,
	})
	require.NoError(t, err)
	return room
}
