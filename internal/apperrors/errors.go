package apperrors

import (
	"errors"
	"fmt"

	"tourismBooking/models"
)

var ErrAuthentication = errors.New("please log in to access this page")
var ErrAuthorization = errors.New("you do not have permission to access this page")
var ErrUnknownRole = models.ErrUnknownRole
var ErrIncompleteIdentity = errors.New("identity is incomplete")
var ErrNotFound = errors.New("record not found")
var ErrUserExists = errors.New("username already exists")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrRateLimited = errors.New("too many login attempts")

// ConnectionError reports that the datastore was unreachable or rejected the
// credentials it was given.
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to database: %v", e.Cause)
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

// ConstraintError reports a write rejected by the datastore (foreign key,
// unique or check violation). Error returns the driver message verbatim.
type ConstraintError struct {
	Cause error
}

func (e *ConstraintError) Error() string { return e.Cause.Error() }

func (e *ConstraintError) Unwrap() error { return e.Cause }

// ValidationError reports a malformed form field. Message is user facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsConnection reports whether err is, or wraps, a ConnectionError.
func IsConnection(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// IsConstraint reports whether err is, or wraps, a ConstraintError.
func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}
