package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbouch/roombrowse/internal/domain"
)

func TestRoomStoreCreate(t *testing.T) {
	d := openTestDB(t)
	store := NewRoomStore(d)
	ctx := context.Background()

	loc := mustCreateLocation(t, d, "Science Center")

	room, err := store.Create(ctx, &domain.Room{
		Name:           "SC-101",
		Description:    "Seminar room",
		Capacity:       20,
		BookingContact: "Front desk",
		BookingEmail:   "desk@example.com",
		LocationID:     loc.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, room.ID)

	got, err := store.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "SC-101", got.Name)
	assert.Equal(t, 20, got.Capacity)
	assert.Equal(t, "Seminar room", got.Description)
	assert.Equal(t, loc.ID, got.LocationID)
}

func TestRoomStoreCreateMissingLocation(t *testing.T) {
	d := openTestDB(t)
	store := NewRoomStore(d)
	ctx := context.Background()

	_, err := store.Create(ctx, &domain.Room{Name: "Orphan", Capacity: 5, LocationID: 42})
	assert.ErrorIs(t, err, ErrNotFound)

	// Nothing was written.
	rooms, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestRoomStoreCreateDuplicate(t *testing.T) {
	d := openTestDB(t)
	store := NewRoomStore(d)
	ctx := context.Background()

	loc := mustCreateLocation(t, d, "Library")
	mustCreateRoom(t, d, "Reading Room", loc.ID)

	_, err := store.Create(ctx, &domain.Room{Name: "Reading Room", Capacity: 8, LocationID: loc.ID})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRoomStoreGetByIDNotFound(t *testing.T) {
	d := openTestDB(t)

	_, err := NewRoomStore(d).GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoomStoreListByLocationID(t *testing.T) {
	d := openTestDB(t)
	store := NewRoomStore(d)
	ctx := context.Background()

	sci := mustCreateLocation(t, d, "Science Center")
	lib := mustCreateLocation(t, d, "Library")
	mustCreateRoom(t, d, "SC-101", sci.ID)
	mustCreateRoom(t, d, "SC-102", sci.ID)
	mustCreateRoom(t, d, "Reading Room", lib.ID)

	rooms, err := store.ListByLocationID(ctx, sci.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "SC-101", rooms[0].Name)
	assert.Equal(t, "SC-102", rooms[1].Name)
}

func TestRoomStoreSearchNames(t *testing.T) {
	d := openTestDB(t)
	store := NewRoomStore(d)
	ctx := context.Background()

	loc := mustCreateLocation(t, d, "Engineering")
	mustCreateRoom(t, d, "Chemistry Lab", loc.ID)
	mustCreateRoom(t, d, "Physics Lab", loc.ID)
	mustCreateRoom(t, d, "Lecture Hall", loc.ID)

	all, err := store.SearchNames(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	labs, err := store.SearchNames(ctx, "lab")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chemistry Lab", "Physics Lab"}, labs)

	none, err := store.SearchNames(ctx, "auditorium")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestRoomStoreDelete(t *testing.T) {
	d := openTestDB(t)
	store := NewRoomStore(d)
	ctx := context.Background()

	loc := mustCreateLocation(t, d, "Annex")
	room := mustCreateRoom(t, d, "A-1", loc.ID)

	require.NoError(t, store.Delete(ctx, room.ID))

	_, err := store.GetByID(ctx, room.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, room.ID), ErrNotFound)
}
