package web

import (
	"encoding/json"
	"net/http"
	"strings"
)

// handleSearchRooms returns a JSON array of room names. With a query
// parameter the list is narrowed to names containing it (case-insensitive
// substring); without one it lists every room. No match is an empty array,
// never an error.
func (s *Server) handleSearchRooms(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))

	names, err := s.directory.SearchRoomNames(r.Context(), query)
	if err != nil {
		s.logger.Error("room search failed", "query", query, "error", err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, names)
}

// handleSearchLocations is the location counterpart of handleSearchRooms.
func (s *Server) handleSearchLocations(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))

	names, err := s.directory.SearchLocationNames(r.Context(), query)
	if err != nil {
		s.logger.Error("location search failed", "query", query, "error", err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, names)
}

func (s *Server) writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}
