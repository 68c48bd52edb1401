package auth

import (
	"tourismBooking/internal/apperrors"
	"tourismBooking/models"
)

// Flash categories.
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashError   = "error"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the per-request view of a client's session. It holds either a
// complete identity or none, plus pending flashes. A Session is not safe
// for concurrent use; each request owns its own.
type Session struct {
	identity *models.Identity
	flashes  []Flash

	token  string // server-side token, redis backend only
	rotate bool   // issue a new token on save
	dirty  bool
}

// NewSession returns an anonymous session.
func NewSession() *Session {
	return &Session{}
}

// Establish stores id as the session identity, replacing any previous one.
// Incomplete identities are rejected and leave the session unchanged.
func (s *Session) Establish(id models.Identity) error {
	if !id.Complete() {
		return apperrors.ErrIncompleteIdentity
	}
	s.identity = &id
	s.rotate = true
	s.dirty = true
	return nil
}

// CurrentIdentity returns the session identity, if any.
func (s *Session) CurrentIdentity() (models.Identity, bool) {
	if s == nil || s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

// Clear removes the identity. Pending flashes survive so the next page can
// still show e.g. the logout notice.
func (s *Session) Clear() {
	s.identity = nil
	s.rotate = true
	s.dirty = true
}

// AddFlash queues a notice for the next render.
func (s *Session) AddFlash(category, message string) {
	s.flashes = append(s.flashes, Flash{Category: category, Message: message})
	s.dirty = true
}

// Flashes returns and consumes the pending notices.
func (s *Session) Flashes() []Flash {
	out := s.flashes
	if len(out) > 0 {
		s.flashes = nil
		s.dirty = true
	}
	return out
}

// PeekFlashes returns the pending notices without consuming them.
func (s *Session) PeekFlashes() []Flash {
	return append([]Flash(nil), s.flashes...)
}

// Dirty reports whether the session must be written back.
func (s *Session) Dirty() bool { return s.dirty }

func (s *Session) empty() bool {
	return s.identity == nil && len(s.flashes) == 0
}

// payload is the serialized form shared by the stores.
type payload struct {
	UserID   int64   `json:"uid,omitempty"`
	Username string  `json:"usr,omitempty"`
	Role     string  `json:"rol,omitempty"`
	Flashes  []Flash `json:"fl,omitempty"`
}

func (s *Session) payload() payload {
	p := payload{Flashes: s.flashes}
	if s.identity != nil {
		p.UserID = s.identity.UserID
		p.Username = s.identity.Username
		p.Role = string(s.identity.Role)
	}
	return p
}

// sessionFrom rebuilds a session. A payload whose identity is not complete
// loads as anonymous.
func sessionFrom(p payload) *Session {
	s := &Session{flashes: p.Flashes}
	if role, err := models.ParseRole(p.Role); err == nil {
		id := models.Identity{UserID: p.UserID, Username: p.Username, Role: role}
		if id.Complete() {
			s.identity = &id
		}
	}
	return s
}
