package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB, *sql.Conn and *sql.Tx, so the same
// repository runs on a pool, a request's connection or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const (
	queryTimeout = 3 * time.Second
	listTimeout  = 5 * time.Second
)

// nextID returns MAX(col)+1 for table, or 1 when the table is empty.
func nextID(ctx context.Context, q DBTX, table, col string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var max sql.NullInt64
	if err := q.QueryRowContext(ctx, `SELECT MAX(`+col+`) FROM `+table).Scan(&max); err != nil {
		return 0, err
	}
	return max.Int64 + 1, nil
}

// execAffected runs a single write statement and returns the affected row count.
func execAffected(ctx context.Context, q DBTX, query string, args ...any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
