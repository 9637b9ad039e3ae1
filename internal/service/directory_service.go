package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nbouch/roombrowse/internal/domain"
	"github.com/nbouch/roombrowse/internal/imagestore"
)

// locationRepository is the subset of store.LocationStore that
// DirectoryService requires.
type locationRepository interface {
	Create(ctx context.Context, name string) (*domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	GetByName(ctx context.Context, name string) (*domain.Location, error)
	List(ctx context.Context) ([]*domain.Location, error)
	SearchNames(ctx context.Context, query string) ([]string, error)
	DeleteCascade(ctx context.Context, id int64) (*domain.Location, int64, error)
}

// roomRepository is the subset of store.RoomStore that DirectoryService
// requires.
type roomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	ListByLocationID(ctx context.Context, locationID int64) ([]*domain.Room, error)
	SearchNames(ctx context.Context, query string) ([]string, error)
	Delete(ctx context.Context, id int64) error
}

// DirectoryService owns the location/room catalog: admin mutations, public
// browsing, and name search.
type DirectoryService struct {
	locationStore locationRepository
	roomStore     roomRepository
	imageStg      imagestore.ImageStore
	logger        *slog.Logger
}

func NewDirectoryService(
	locationStore locationRepository,
	roomStore roomRepository,
	imageStg imagestore.ImageStore,
	logger *slog.Logger,
) *DirectoryService {
	return &DirectoryService{
		locationStore: locationStore,
		roomStore:     roomStore,
		imageStg:      imageStg,
		logger:        logger,
	}
}

func (s *DirectoryService) AddLocation(ctx context.Context, name string) (*domain.Location, error) {
	return s.locationStore.Create(ctx, name)
}

func (s *DirectoryService) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	return s.locationStore.List(ctx)
}

// AddRoom resolves the location by name and creates the room. The store
// returns ErrNotFound when the location does not exist and ErrDuplicate when
// the room name is taken; callers turn those into field-specific messages.
func (s *DirectoryService) AddRoom(ctx context.Context, room *domain.Room, locationName string) (*domain.Room, error) {
	location, err := s.locationStore.GetByName(ctx, locationName)
	if err != nil {
		return nil, err
	}
	room.LocationID = location.ID

	created, err := s.roomStore.Create(ctx, room)
	if err != nil {
		return nil, err
	}
	s.logger.Info("room created", "room_id", created.ID, "name", created.Name, "location", locationName)
	return created, nil
}

// GetRoom returns the room with its image keys, discovered by scanning the
// image store for the room's prefix.
func (s *DirectoryService) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.roomStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := s.imageStg.ListByPrefix(ctx, roomImagePrefix(room.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to list room images: %w", err)
	}
	room.Images = images
	return room, nil
}

func (s *DirectoryService) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	return s.roomStore.List(ctx)
}

// RoomsByLocationName returns the named location and its rooms.
func (s *DirectoryService) RoomsByLocationName(ctx context.Context, name string) (*domain.Location, []*domain.Room, error) {
	location, err := s.locationStore.GetByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	rooms, err := s.roomStore.ListByLocationID(ctx, location.ID)
	if err != nil {
		return nil, nil, err
	}
	return location, rooms, nil
}

// SearchRoomNames returns room names containing query (case-insensitive
// substring); an empty query returns every room name. The result is never
// nil so it always serializes as a JSON array.
func (s *DirectoryService) SearchRoomNames(ctx context.Context, query string) ([]string, error) {
	return s.roomStore.SearchNames(ctx, query)
}

// SearchLocationNames is SearchRoomNames for locations.
func (s *DirectoryService) SearchLocationNames(ctx context.Context, query string) ([]string, error) {
	return s.locationStore.SearchNames(ctx, query)
}

func (s *DirectoryService) RemoveRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.roomStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.roomStore.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.cleanupImages(ctx, room.ID)
	return room, nil
}

// RemoveLocation deletes the location and every room in it as one atomic
// unit and returns the location plus the number of rooms removed. Image
// files for the removed rooms are cleaned up afterwards, best effort.
func (s *DirectoryService) RemoveLocation(ctx context.Context, id int64) (*domain.Location, int64, error) {
	rooms, err := s.roomStore.ListByLocationID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	location, roomsRemoved, err := s.locationStore.DeleteCascade(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	for _, room := range rooms {
		s.cleanupImages(ctx, room.ID)
	}
	s.logger.Info("location removed", "location_id", id, "name", location.Name, "rooms_removed", roomsRemoved)
	return location, roomsRemoved, nil
}

// cleanupImages removes a deleted room's image files. Failures are logged
// and otherwise ignored; the rows are already gone.
func (s *DirectoryService) cleanupImages(ctx context.Context, roomID int64) {
	keys, err := s.imageStg.ListByPrefix(ctx, roomImagePrefix(roomID))
	if err != nil {
		s.logger.Warn("failed to list images for deleted room", "room_id", roomID, "error", err)
		return
	}
	for _, key := range keys {
		if err := s.imageStg.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete image for deleted room", "room_id", roomID, "key", key, "error", err)
		}
	}
}

func roomImagePrefix(roomID int64) string {
	return fmt.Sprintf("room_%d_", roomID)
}
