package service

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nbouch/roombrowse/internal/db"
	"github.com/nbouch/roombrowse/internal/imagestore/local"
	"github.com/nbouch/roombrowse/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// newTestDirectory wires a DirectoryService over a fresh database and a
// temp-dir image store. The image store is returned for seeding files.
func newTestDirectory(t *testing.T) (*DirectoryService, *local.LocalImageStore) {
	t.Helper()
	d := openTestDB(t)
	images, err := local.NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	svc := NewDirectoryService(store.NewLocationStore(d), store.NewRoomStore(d), images, testLogger())
	return svc, images
}

func newTestAccounts(t *testing.T) *AccountService {
	t.Helper()
	return NewAccountService(store.NewUserStore(openTestDB(t)), testLogger())
}
