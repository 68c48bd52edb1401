package repository

import (
	"context"
	"database/sql"
	"errors"

	"tourismBooking/internal/apperrors"
	"tourismBooking/internal/db"
	"tourismBooking/models"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(q DBTX) *UserRepository {
	return &UserRepository{db: q}
}

// Create inserts a new staff account and returns it with its generated ID.
// A duplicate username yields apperrors.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string, role models.Role) (*models.AppUser, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	u := models.AppUser{Username: username, PasswordHash: passwordHash, Role: string(role)}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO AppUser (Username, PasswordHash, Role) VALUES ($1, $2, $3) RETURNING UserID`,
		username, passwordHash, string(role)).Scan(&u.ID)
	if err != nil {
		if apperrors.IsConstraint(db.Classify(err)) {
			return nil, apperrors.ErrUserExists
		}
		return nil, err
	}
	return &u, nil
}

// GetByUsername returns nil, nil when no account has that username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.AppUser, error) {
	return r.getOne(ctx, `SELECT UserID, Username, PasswordHash, Role FROM AppUser WHERE Username = $1`, username)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.AppUser, error) {
	return r.getOne(ctx, `SELECT UserID, Username, PasswordHash, Role FROM AppUser WHERE UserID = $1`, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.AppUser, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u models.AppUser
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
