package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/nbouch/roombrowse/internal/store"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	locations, err := s.directory.ListLocations(r.Context())
	if err != nil {
		s.logger.Error("failed to list locations", "error", err)
		http.Error(w, "failed to load home page", http.StatusInternalServerError)
		return
	}
	s.renderPage(w, r, map[string]any{"Locations": locations}, "pages/index.html")
}

func (s *Server) handleRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(r.PathValue("room_id"), 10, 64)
	if err != nil {
		redirectFlash(w, r, "/", "Room does not exist.")
		return
	}

	room, err := s.directory.GetRoom(r.Context(), roomID)
	if errors.Is(err, store.ErrNotFound) {
		redirectFlash(w, r, "/", "Room does not exist.")
		return
	}
	if err != nil {
		s.logger.Error("failed to get room", "room_id", roomID, "error", err)
		http.Error(w, "failed to load room", http.StatusInternalServerError)
		return
	}

	s.renderPage(w, r, map[string]any{"Room": room}, "pages/room.html")
}

// handleLocation lists the rooms housed in the named location.
func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("location_name")

	location, rooms, err := s.directory.RoomsByLocationName(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		redirectFlash(w, r, "/", "Location does not exist.")
		return
	}
	if err != nil {
		s.logger.Error("failed to list rooms for location", "location", name, "error", err)
		http.Error(w, "failed to load location", http.StatusInternalServerError)
		return
	}

	s.renderPage(w, r, map[string]any{
		"Location": location,
		"Rooms":    rooms,
	}, "pages/location.html")
}

// handleImage streams an uploaded room image from the image store.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	img, mimeType, err := s.images.Open(r.Context(), key)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer img.Close()

	w.Header().Set("Content-Type", mimeType)
	if _, err := io.Copy(w, img); err != nil {
		s.logger.Error("failed to stream image", "key", key, "error", err)
	}
}
