package db

import (
	"fmt"
	"strings"

	"tourismBooking/internal/apperrors"
	"tourismBooking/models"
)

// Params is the bundle needed to open a datastore connection as one role.
type Params struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// String masks the password.
func (p Params) String() string {
	return fmt.Sprintf("%s@%s:%s/%s", p.User, p.Host, p.Port, p.Database)
}

// Router maps roles to their connection parameters. It is read-only after
// NewRouter returns and safe for concurrent use.
type Router struct {
	byRole map[models.Role]Params
}

// NewRouter copies creds and fails unless every role has exactly one entry.
func NewRouter(creds map[models.Role]Params) (*Router, error) {
	byRole := make(map[models.Role]Params, len(creds))
	for role, p := range creds {
		if !role.Valid() {
			return nil, fmt.Errorf("credential for %q: %w", role, apperrors.ErrUnknownRole)
		}
		byRole[role] = p
	}
	var missing []string
	for _, r := range models.Roles() {
		if _, ok := byRole[r]; !ok {
			missing = append(missing, string(r))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing database credentials for roles: %s", strings.Join(missing, ", "))
	}
	return &Router{byRole: byRole}, nil
}

// Resolve returns the parameters for role, falling back to admin when role is
// empty or unrecognized.
func (r *Router) Resolve(role string) Params {
	p, err := r.ResolveStrict(role)
	if err != nil {
		return r.byRole[models.RoleAdmin]
	}
	return p
}

// ResolveStrict returns the parameters for role or ErrUnknownRole.
func (r *Router) ResolveStrict(role string) (Params, error) {
	parsed, err := models.ParseRole(role)
	if err != nil {
		return Params{}, err
	}
	return r.byRole[parsed], nil
}
