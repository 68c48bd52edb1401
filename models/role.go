package models

import (
	"errors"
	"strings"
)

// Role is one of the fixed staff roles. It decides both which routes a user
// may reach and which database credentials their requests run under.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAgent      Role = "agent"
	RoleAccountant Role = "accountant"
)

// ErrUnknownRole is returned when a string is not one of the known roles.
var ErrUnknownRole = errors.New("unknown role")

// Roles lists every role in the closed set.
func Roles() []Role {
	return []Role{RoleAdmin, RoleAgent, RoleAccountant}
}

// ParseRole normalizes s and maps it onto the closed role set.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleAccountant:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
