package testutil

import (
	"database/sql"
	"testing"

	"tourismBooking/internal/db"
	"tourismBooking/models"
)

// MemoryDSN returns the DSN of a named in-memory SQLite database with foreign
// keys enabled on every connection.
func MemoryDSN(name string) string {
	return "file:" + name + "?mode=memory&cache=shared&_fk=1"
}

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The handle stays open until test cleanup, which keeps the shared database
// alive for connections opened later by a db.Connector.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache so that every connection opened with MemoryDSN(name) sees the same DB.
	d, err := db.Open(db.DriverSQLite, MemoryDSN(name))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// SQLiteRouter returns a router whose roles all point at the named in-memory
// database under distinct user names, so tests can tell them apart.
func SQLiteRouter(t *testing.T, name string) *db.Router {
	t.Helper()
	creds := map[models.Role]db.Params{}
	for _, r := range models.Roles() {
		creds[r] = db.Params{User: string(r), Database: MemoryDSN(name)}
	}
	rt, err := db.NewRouter(creds)
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return rt
}
