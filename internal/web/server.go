package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/nbouch/roombrowse/internal/imagestore"
	"github.com/nbouch/roombrowse/internal/service"
	"github.com/nbouch/roombrowse/internal/session"
)

type Server struct {
	directory *service.DirectoryService
	accounts  *service.AccountService
	sessions  *session.Manager
	images    imagestore.ImageStore
	templates embed.FS
	mux       *http.ServeMux
	logger    *slog.Logger
}

func NewServer(
	directory *service.DirectoryService,
	accounts *service.AccountService,
	sessions *session.Manager,
	images imagestore.ImageStore,
	tmpl embed.FS,
	logger *slog.Logger,
) *Server {
	s := &Server{
		directory: directory,
		accounts:  accounts,
		sessions:  sessions,
		images:    images,
		templates: tmpl,
		mux:       http.NewServeMux(),
		logger:    logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /login", s.handleLoginForm)
	s.mux.HandleFunc("POST /login", s.handleLogin)
	s.mux.HandleFunc("GET /logout", s.requireAuth(s.handleLogout))

	s.mux.HandleFunc("GET /search/rooms", s.handleSearchRooms)
	s.mux.HandleFunc("GET /search/locations", s.handleSearchLocations)
	s.mux.HandleFunc("GET /rooms/{room_id}", s.handleRoom)
	s.mux.HandleFunc("GET /location/{location_name}", s.handleLocation)
	s.mux.HandleFunc("GET /images/{key}", s.handleImage)

	s.mux.HandleFunc("GET /admin", s.requireAuth(s.handleAdmin))
	s.mux.HandleFunc("GET /admin/add/location", s.requireAuth(s.handleAddLocationForm))
	s.mux.HandleFunc("POST /admin/add/location", s.requireAuth(s.handleAddLocation))
	s.mux.HandleFunc("GET /admin/add/room", s.requireAuth(s.handleAddRoomForm))
	s.mux.HandleFunc("POST /admin/add/room", s.requireAuth(s.handleAddRoom))
	s.mux.HandleFunc("GET /admin/add/user", s.requireAuth(s.handleAddUserForm))
	s.mux.HandleFunc("POST /admin/add/user", s.requireAuth(s.handleAddUser))
	s.mux.HandleFunc("GET /admin/remove/user", s.requireAuth(s.handleRemoveUserForm))
	s.mux.HandleFunc("POST /admin/remove/user", s.requireAuth(s.handleRemoveUser))
	s.mux.HandleFunc("GET /admin/remove/room", s.requireAuth(s.handleRemoveRoomForm))
	s.mux.HandleFunc("POST /admin/remove/room", s.requireAuth(s.handleRemoveRoom))
	s.mux.HandleFunc("GET /admin/remove/location", s.requireAuth(s.handleRemoveLocationForm))
	s.mux.HandleFunc("POST /admin/remove/location", s.requireAuth(s.handleRemoveLocation))
}

type contextKey string

const emailKey contextKey = "email"

// requireAuth validates the session cookie before running next. Requests
// without a valid session are redirected to the login page; the handler body
// never runs.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		email, err := s.sessions.Parse(cookie.Value)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		// The session outlives the account if the user was removed;
		// re-resolve the principal on every request.
		if _, err := s.accounts.GetUser(r.Context(), email); err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), emailKey, email)))
	}
}

// currentEmail returns the authenticated email placed by requireAuth.
func currentEmail(r *http.Request) string {
	email, _ := r.Context().Value(emailKey).(string)
	return email
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

// renderPage parses and executes a full-page template set. Every page gets
// the pending flash message and the current login state.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any, files ...string) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = popFlash(w, r)
	}
	data["LoggedIn"] = s.loggedIn(r)

	files = append([]string{"base.html"}, files...)
	tmpl, err := template.New("").ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		s.logger.Error("template parse error", "error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		s.logger.Error("template execute error", "error", err)
	}
}

// loggedIn reports whether the request carries a valid session, without
// requiring one.
func (s *Server) loggedIn(r *http.Request) bool {
	if email := currentEmail(r); email != "" {
		return true
	}
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		return false
	}
	_, err = s.sessions.Parse(cookie.Value)
	return err == nil
}

// redirectFlash queues msg in the flash cookie and redirects to target.
func redirectFlash(w http.ResponseWriter, r *http.Request, target, msg string) {
	setFlash(w, msg)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
