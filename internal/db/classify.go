package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"tourismBooking/internal/apperrors"
)

// Classify turns driver constraint violations into *apperrors.ConstraintError
// and returns every other error unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsConstraint(err) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return &apperrors.ConstraintError{Cause: err}
	}
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) && sqErr.Code == sqlite3.ErrConstraint {
		return &apperrors.ConstraintError{Cause: err}
	}
	return err
}
