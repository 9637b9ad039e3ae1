package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/nbouch/roombrowse/internal/service"
)

// loginForm is the typed view of the login request body.
type loginForm struct {
	Email    string
	Password string
	Remember bool
}

func parseLoginForm(r *http.Request) loginForm {
	return loginForm{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
		Remember: r.FormValue("remember") != "",
	}
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, nil, "pages/login.html")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form := parseLoginForm(r)
	if form.Email == "" || form.Password == "" {
		s.renderPage(w, r, map[string]any{
			"Flash": "Must enter email and password.",
		}, "pages/login.html")
		return
	}

	user, err := s.accounts.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		// The same message covers unknown email and wrong password.
		if errors.Is(err, service.ErrBadCredentials) {
			redirectFlash(w, r, "/login", "Email or password incorrect.")
			return
		}
		s.logger.Error("login failed", "error", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	cookie, err := s.sessions.Issue(user, form.Remember)
	if err != nil {
		s.logger.Error("failed to issue session", "error", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, cookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.sessions.Clear())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
