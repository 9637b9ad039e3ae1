package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nbouch/roombrowse/internal/domain"
)

// CookieName is the name of the session cookie.
const CookieName = "roombrowse_session"

var ErrInvalidSession = errors.New("invalid session")

// Manager issues and validates signed session cookies. The cookie value is
// an HS256 JWT whose subject is the authenticated principal's identity;
// tampering is detected by the signature, so no server-side session state is
// kept.
type Manager struct {
	secret      []byte
	ttl         time.Duration
	rememberTTL time.Duration
}

// NewManager builds a Manager around the provisioned signing secret. ttl is
// the lifetime of a normal session, rememberTTL the lifetime when the user
// asked to be remembered.
func NewManager(secret []byte, ttl, rememberTTL time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl, rememberTTL: rememberTTL}
}

// Issue returns a session cookie asserting the given principal. With
// remember set, the cookie and token live for the longer remember TTL and
// the cookie persists across browser restarts.
func (m *Manager) Issue(principal domain.Authenticatable, remember bool) (*http.Cookie, error) {
	ttl := m.ttl
	if remember {
		ttl = m.rememberTTL
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)

	claims := jwt.MapClaims{
		"sub": principal.AuthID(),
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		cookie.Expires = exp
	}
	return cookie, nil
}

// Parse validates a session cookie value and returns the identity it
// asserts. Expired, malformed, or tampered tokens yield ErrInvalidSession.
func (m *Manager) Parse(value string) (string, error) {
	token, err := jwt.Parse(value, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSession
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidSession
	}
	return sub, nil
}

// Clear returns a cookie that removes the session from the client.
func (m *Manager) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
