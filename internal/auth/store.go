package auth

import (
	"net/http"
	"time"
)

// Store loads and persists sessions for HTTP requests.
type Store interface {
	// Load never fails for a missing, expired or tampered cookie; those
	// yield an anonymous session. Errors are reserved for backend failures.
	Load(r *http.Request) (*Session, error)
	// Save writes the session back if it changed.
	Save(w http.ResponseWriter, s *Session) error
}

// CookieOptions are shared by both stores.
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

func (o CookieOptions) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     o.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (o CookieOptions) expire(w http.ResponseWriter) {
	http.SetCookie(w, o.cookie("", -1))
}
