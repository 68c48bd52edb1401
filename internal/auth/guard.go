package auth

import (
	"tourismBooking/internal/apperrors"
	"tourismBooking/models"
)

// Notices shown when the guard turns a request away.
const (
	NoticeLoginRequired    = "Please log in to access this page."
	NoticePermissionDenied = "You do not have permission to access this page."
)

// Decision is the outcome of an access check. A zero Err means proceed.
type Decision struct {
	Err      error
	Redirect string
	Notice   string
	Identity models.Identity
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool { return d.Err == nil }

// Authorize decides whether the holder of s may run an operation restricted
// to allowed. It only reads the session, except that an identity with an
// unrecognized role is cleared when strict is set. Without strict such an
// identity is simply outside every allowed set.
func Authorize(s *Session, strict bool, allowed ...models.Role) Decision {
	id, ok := s.CurrentIdentity()
	if !ok {
		return Decision{Err: apperrors.ErrAuthentication, Redirect: "/login", Notice: NoticeLoginRequired}
	}
	if strict && !id.Role.Valid() {
		s.Clear()
		return Decision{Err: apperrors.ErrAuthentication, Redirect: "/login", Notice: NoticeLoginRequired}
	}
	for _, r := range allowed {
		if id.Role == r {
			return Decision{Identity: id}
		}
	}
	return Decision{Err: apperrors.ErrAuthorization, Redirect: "/", Notice: NoticePermissionDenied, Identity: id}
}
