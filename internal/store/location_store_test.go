package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationStoreCreate(t *testing.T) {
	d := openTestDB(t)
	store := NewLocationStore(d)
	ctx := context.Background()

	loc, err := store.Create(ctx, "Science Center")
	require.NoError(t, err)
	assert.NotZero(t, loc.ID)
	assert.Equal(t, "Science Center", loc.Name)
}

func TestLocationStoreCreateDuplicate(t *testing.T) {
	d := openTestDB(t)
	store := NewLocationStore(d)
	ctx := context.Background()

	_, err := store.Create(ctx, "Library")
	require.NoError(t, err)

	_, err = store.Create(ctx, "Library")
	assert.ErrorIs(t, err, ErrDuplicate)

	// Exactly one row survives.
	locations, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, locations, 1)
}

func TestLocationStoreGetByName(t *testing.T) {
	d := openTestDB(t)
	store := NewLocationStore(d)
	ctx := context.Background()

	created := mustCreateLocation(t, d, "Annex")

	loc, err := store.GetByName(ctx, "Annex")
	require.NoError(t, err)
	assert.Equal(t, created.ID, loc.ID)

	_, err = store.GetByName(ctx, "Nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocationStoreGetByIDNotFound(t *testing.T) {
	d := openTestDB(t)

	_, err := NewLocationStore(d).GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocationStoreSearchNames(t *testing.T) {
	d := openTestDB(t)
	store := NewLocationStore(d)
	ctx := context.Background()

	mustCreateLocation(t, d, "Science Center")
	mustCreateLocation(t, d, "Computer Lab Building")
	mustCreateLocation(t, d, "Library")

	all, err := store.SearchNames(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Computer Lab Building", "Library", "Science Center"}, all)

	matched, err := store.SearchNames(ctx, "lab")
	require.NoError(t, err)
	assert.Equal(t, []string{"Computer Lab Building"}, matched)

	none, err := store.SearchNames(ctx, "observatory")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestLocationStoreDeleteCascade(t *testing.T) {
	d := openTestDB(t)
	store := NewLocationStore(d)
	ctx := context.Background()

	loc := mustCreateLocation(t, d, "Science Center")
	mustCreateRoom(t, d, "SC-101", loc.ID)
	mustCreateRoom(t, d, "SC-102", loc.ID)
	other := mustCreateLocation(t, d, "Library")
	mustCreateRoom(t, d, "L-1", other.ID)

	deleted, roomsRemoved, err := store.DeleteCascade(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science Center", deleted.Name)
	assert.EqualValues(t, 2, roomsRemoved)

	_, err = store.GetByID(ctx, loc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Rooms of other locations are untouched.
	rooms, err := NewRoomStore(d).List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "L-1", rooms[0].Name)
}

func TestLocationStoreDeleteCascadeNotFound(t *testing.T) {
	d := openTestDB(t)

	_, _, err := NewLocationStore(d).DeleteCascade(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
