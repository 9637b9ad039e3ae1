package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/nbouch/roombrowse/internal/domain"
	"github.com/nbouch/roombrowse/internal/service"
	"github.com/nbouch/roombrowse/internal/store"
)

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, nil, "pages/admin.html")
}

// --- add location ---

func (s *Server) handleAddLocationForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, nil, "pages/add_location.html")
}

func (s *Server) handleAddLocation(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		s.renderPage(w, r, map[string]any{"Flash": "Name not specified."},
			"pages/add_location.html")
		return
	}

	location, err := s.directory.AddLocation(r.Context(), name)
	if errors.Is(err, store.ErrDuplicate) {
		s.renderPage(w, r, map[string]any{"Flash": "Location already exists."},
			"pages/add_location.html")
		return
	}
	if err != nil {
		s.logger.Error("failed to add location", "name", name, "error", err)
		http.Error(w, "failed to add location", http.StatusInternalServerError)
		return
	}

	redirectFlash(w, r, "/admin", fmt.Sprintf("Location %q created successfully.", location.Name))
}

// --- add room ---

// addRoomForm is the typed view of the add-room request body.
type addRoomForm struct {
	Name           string
	Location       string
	Capacity       string
	Description    string
	BookingContact string
	BookingEmail   string
}

func parseAddRoomForm(r *http.Request) addRoomForm {
	return addRoomForm{
		Name:           strings.TrimSpace(r.FormValue("name")),
		Location:       strings.TrimSpace(r.FormValue("location")),
		Capacity:       strings.TrimSpace(r.FormValue("capacity")),
		Description:    strings.TrimSpace(r.FormValue("description")),
		BookingContact: strings.TrimSpace(r.FormValue("booking_contact")),
		BookingEmail:   strings.TrimSpace(r.FormValue("booking_email")),
	}
}

// validate returns a user-facing message for the first failed precondition,
// plus the parsed capacity when all checks pass.
func (f addRoomForm) validate() (int, string) {
	if f.Name == "" {
		return 0, "Name not specified."
	}
	if f.Location == "" {
		return 0, "Location not specified."
	}
	if f.Capacity == "" {
		return 0, "Capacity not specified."
	}
	capacity, err := strconv.Atoi(f.Capacity)
	if err != nil || capacity <= 0 {
		return 0, "Capacity must be a positive number."
	}
	return capacity, ""
}

func (s *Server) renderAddRoomForm(w http.ResponseWriter, r *http.Request, flash string) {
	locations, err := s.directory.ListLocations(r.Context())
	if err != nil {
		s.logger.Error("failed to list locations", "error", err)
		http.Error(w, "failed to load form", http.StatusInternalServerError)
		return
	}
	data := map[string]any{"Locations": locations}
	if flash != "" {
		data["Flash"] = flash
	}
	s.renderPage(w, r, data, "pages/add_room.html")
}

func (s *Server) handleAddRoomForm(w http.ResponseWriter, r *http.Request) {
	s.renderAddRoomForm(w, r, "")
}

func (s *Server) handleAddRoom(w http.ResponseWriter, r *http.Request) {
	form := parseAddRoomForm(r)
	capacity, msg := form.validate()
	if msg != "" {
		s.renderAddRoomForm(w, r, msg)
		return
	}

	room := &domain.Room{
		Name:           form.Name,
		Description:    form.Description,
		Capacity:       capacity,
		BookingContact: form.BookingContact,
		BookingEmail:   form.BookingEmail,
	}
	created, err := s.directory.AddRoom(r.Context(), room, form.Location)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.renderAddRoomForm(w, r, "Specified location does not exist.")
		return
	case errors.Is(err, store.ErrDuplicate):
		s.renderAddRoomForm(w, r, "Room already exists.")
		return
	case err != nil:
		s.logger.Error("failed to add room", "name", form.Name, "error", err)
		http.Error(w, "failed to add room", http.StatusInternalServerError)
		return
	}

	redirectFlash(w, r, "/admin", fmt.Sprintf("Room %q created successfully.", created.Name))
}

// --- add user ---

type addUserForm struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func parseAddUserForm(r *http.Request) addUserForm {
	return addUserForm{
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
		Email:     strings.TrimSpace(r.FormValue("email")),
		Password:  r.FormValue("password"),
	}
}

func (s *Server) handleAddUserForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, nil, "pages/add_user.html")
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	form := parseAddUserForm(r)
	if form.FirstName == "" || form.LastName == "" || form.Email == "" || form.Password == "" {
		s.renderPage(w, r, map[string]any{"Flash": "All fields are required."},
			"pages/add_user.html")
		return
	}

	user, err := s.accounts.CreateUser(r.Context(), form.FirstName, form.LastName, form.Email, form.Password)
	if errors.Is(err, store.ErrDuplicate) {
		s.renderPage(w, r, map[string]any{"Flash": "User already exists."},
			"pages/add_user.html")
		return
	}
	if err != nil {
		s.logger.Error("failed to add user", "email", form.Email, "error", err)
		http.Error(w, "failed to add user", http.StatusInternalServerError)
		return
	}

	redirectFlash(w, r, "/admin", fmt.Sprintf("User %q created successfully.", user.DisplayName()))
}

// --- remove user ---

func (s *Server) renderRemoveUserForm(w http.ResponseWriter, r *http.Request, flash string) {
	users, err := s.accounts.ListUsers(r.Context())
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		http.Error(w, "failed to load form", http.StatusInternalServerError)
		return
	}
	data := map[string]any{"Users": users}
	if flash != "" {
		data["Flash"] = flash
	}
	s.renderPage(w, r, data, "pages/remove_user.html")
}

func (s *Server) handleRemoveUserForm(w http.ResponseWriter, r *http.Request) {
	s.renderRemoveUserForm(w, r, "")
}

func (s *Server) handleRemoveUser(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		s.renderRemoveUserForm(w, r, "Must specify a user.")
		return
	}

	user, err := s.accounts.RemoveUser(r.Context(), email, currentEmail(r))
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.renderRemoveUserForm(w, r, "User does not exist.")
		return
	case errors.Is(err, service.ErrSelfDelete):
		s.renderRemoveUserForm(w, r, "Cannot delete current user account.")
		return
	case err != nil:
		s.logger.Error("failed to remove user", "email", email, "error", err)
		http.Error(w, "failed to remove user", http.StatusInternalServerError)
		return
	}

	redirectFlash(w, r, "/admin", fmt.Sprintf("User %q deleted successfully.", user.DisplayName()))
}

// --- remove room ---

func (s *Server) renderRemoveRoomForm(w http.ResponseWriter, r *http.Request, flash string) {
	rooms, err := s.directory.ListRooms(r.Context())
	if err != nil {
		s.logger.Error("failed to list rooms", "error", err)
		http.Error(w, "failed to load form", http.StatusInternalServerError)
		return
	}
	data := map[string]any{"Rooms": rooms}
	if flash != "" {
		data["Flash"] = flash
	}
	s.renderPage(w, r, data, "pages/remove_room.html")
}

func (s *Server) handleRemoveRoomForm(w http.ResponseWriter, r *http.Request) {
	s.renderRemoveRoomForm(w, r, "")
}

func (s *Server) handleRemoveRoom(w http.ResponseWriter, r *http.Request) {
	idRaw := strings.TrimSpace(r.FormValue("room_id"))
	if idRaw == "" {
		s.renderRemoveRoomForm(w, r, "Must specify a room.")
		return
	}
	roomID, err := strconv.ParseInt(idRaw, 10, 64)
	if err != nil {
		s.renderRemoveRoomForm(w, r, "Room does not exist.")
		return
	}

	room, err := s.directory.RemoveRoom(r.Context(), roomID)
	if errors.Is(err, store.ErrNotFound) {
		s.renderRemoveRoomForm(w, r, "Room does not exist.")
		return
	}
	if err != nil {
		s.logger.Error("failed to remove room", "room_id", roomID, "error", err)
		http.Error(w, "failed to remove room", http.StatusInternalServerError)
		return
	}

	redirectFlash(w, r, "/admin", fmt.Sprintf("Room %q deleted successfully.", room.Name))
}

// --- remove location ---

func (s *Server) renderRemoveLocationForm(w http.ResponseWriter, r *http.Request, flash string) {
	locations, err := s.directory.ListLocations(r.Context())
	if err != nil {
		s.logger.Error("failed to list locations", "error", err)
		http.Error(w, "failed to load form", http.StatusInternalServerError)
		return
	}
	data := map[string]any{"Locations": locations}
	if flash != "" {
		data["Flash"] = flash
	}
	s.renderPage(w, r, data, "pages/remove_location.html")
}

func (s *Server) handleRemoveLocationForm(w http.ResponseWriter, r *http.Request) {
	s.renderRemoveLocationForm(w, r, "")
}

func (s *Server) handleRemoveLocation(w http.ResponseWriter, r *http.Request) {
	idRaw := strings.TrimSpace(r.FormValue("location_id"))
	if idRaw == "" {
		s.renderRemoveLocationForm(w, r, "Must specify a location.")
		return
	}
	locationID, err := strconv.ParseInt(idRaw, 10, 64)
	if err != nil {
		s.renderRemoveLocationForm(w, r, "Location does not exist.")
		return
	}

	location, roomsRemoved, err := s.directory.RemoveLocation(r.Context(), locationID)
	if errors.Is(err, store.ErrNotFound) {
		s.renderRemoveLocationForm(w, r, "Location does not exist.")
		return
	}
	if err != nil {
		s.logger.Error("failed to remove location", "location_id", locationID, "error", err)
		http.Error(w, "failed to remove location", http.StatusInternalServerError)
		return
	}

	redirectFlash(w, r, "/admin", fmt.Sprintf("Location %q and %d room(s) deleted successfully.",
		location.Name, roomsRemoved))
}
