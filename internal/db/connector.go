package db

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"tourismBooking/internal/apperrors"
)

// Connector opens role-scoped connections. By default every Open dials a
// fresh connection that is torn down on Close. With WithPool, one bounded
// pool is kept per credential set and Close checks the connection back in.
type Connector struct {
	driver  string
	pooled  bool
	maxOpen int

	mu    sync.Mutex
	pools map[string]*sql.DB
}

type Option func(*Connector)

// WithPool enables pooled mode with at most maxOpen connections per
// credential set.
func WithPool(maxOpen int) Option {
	return func(c *Connector) {
		c.pooled = true
		if maxOpen > 0 {
			c.maxOpen = maxOpen
		}
	}
}

func NewConnector(driver string, opts ...Option) *Connector {
	c := &Connector{driver: driver, maxOpen: 4, pools: map[string]*sql.DB{}}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Connector) Driver() string { return c.driver }

// DSN renders p for the connector's driver. For sqlite the Database field is
// used as the DSN, with foreign keys and a busy timeout switched on unless
// it sets them itself; the login fields are ignored.
func (c *Connector) DSN(p Params) string {
	if c.driver == DriverSQLite {
		return sqliteDSN(p.Database)
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   net.JoinHostPort(p.Host, p.Port),
		Path:   "/" + p.Database,
	}
	q := url.Values{}
	if p.SSLMode != "" {
		q.Set("sslmode", p.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// sqlite connection options every request connection needs. go-sqlite3
// applies them to each new connection, unlike a one-off PRAGMA.
var sqliteDefaults = []struct{ key, value string }{
	{"_fk", "1"},
	{"_busy_timeout", "5000"},
}

func sqliteDSN(dsn string) string {
	var query string
	if i := strings.IndexByte(dsn, '?'); i >= 0 {
		query = dsn[i+1:]
	}
	set, _ := url.ParseQuery(query)
	var b strings.Builder
	b.WriteString(dsn)
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, d := range sqliteDefaults {
		if set.Has(d.key) || (d.key == "_fk" && set.Has("_foreign_keys")) || (d.key == "_busy_timeout" && set.Has("_timeout")) {
			continue
		}
		b.WriteString(sep + d.key + "=" + d.value)
		sep = "&"
	}
	return b.String()
}

// Open acquires a connection for p and pings it. Failures are returned as
// *apperrors.ConnectionError. The caller owns the returned Conn and must
// Close it.
func (c *Connector) Open(ctx context.Context, p Params) (*Conn, error) {
	var (
		owner *sql.DB
		pool  *sql.DB
		err   error
	)
	if c.pooled {
		pool, err = c.pool(p)
	} else {
		owner, err = sql.Open(c.driver, c.DSN(p))
		if err == nil {
			owner.SetMaxOpenConns(1)
			pool = owner
		}
	}
	if err != nil {
		return nil, &apperrors.ConnectionError{Cause: err}
	}

	sc, err := pool.Conn(ctx)
	if err == nil {
		if err = sc.PingContext(ctx); err != nil {
			_ = sc.Close()
		}
	}
	if err != nil {
		if owner != nil {
			_ = owner.Close()
		}
		return nil, &apperrors.ConnectionError{Cause: err}
	}
	return &Conn{Conn: sc, owner: owner, driver: c.driver}, nil
}

// With opens a connection for p, runs fn and releases the connection on
// every exit path, including a panic in fn.
func (c *Connector) With(ctx context.Context, p Params, fn func(*Conn) error) error {
	conn, err := c.Open(ctx, p)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}

// Close shuts down every pool. It is a no-op in per-request mode.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for dsn, p := range c.pools {
		errs = append(errs, p.Close())
		delete(c.pools, dsn)
	}
	return errors.Join(errs...)
}

func (c *Connector) pool(p Params) (*sql.DB, error) {
	dsn := c.DSN(p)
	c.mu.Lock()
	defer c.mu.Unlock()
	if d, ok := c.pools[dsn]; ok {
		return d, nil
	}
	d, err := sql.Open(c.driver, dsn)
	if err != nil {
		return nil, err
	}
	d.SetMaxOpenConns(c.maxOpen)
	d.SetMaxIdleConns(c.maxOpen)
	c.pools[dsn] = d
	return d, nil
}

// Conn is a connection owned by a single request.
type Conn struct {
	*sql.Conn
	owner  *sql.DB // set in per-request mode; closed with the connection
	driver string

	once     sync.Once
	releases atomic.Int32
	closeErr error
}

// Close releases the connection. Only the first call has an effect.
func (c *Conn) Close() error {
	c.once.Do(func() {
		c.releases.Add(1)
		err := c.Conn.Close()
		if c.owner != nil {
			if oerr := c.owner.Close(); err == nil {
				err = oerr
			}
		}
		c.closeErr = err
	})
	return c.closeErr
}

// Released reports whether Close has run.
func (c *Conn) Released() bool { return c.releases.Load() > 0 }

func (c *Conn) Driver() string { return c.driver }

// InTx runs fn inside a transaction. The transaction is rolled back when fn
// returns an error or panics; errors are passed through Classify.
func (c *Conn) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		return Classify(err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return Classify(err)
	}
	return Classify(tx.Commit())
}
