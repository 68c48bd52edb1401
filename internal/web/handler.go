package web

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourismBooking/internal/apperrors"
	"tourismBooking/internal/auth"
	"tourismBooking/internal/catalog"
	"tourismBooking/internal/db"
	"tourismBooking/pkg/logger"
)

// Opener acquires role-scoped connections. *db.Connector implements it.
type Opener interface {
	Open(ctx context.Context, p db.Params) (*db.Conn, error)
}

// Options configures a Handler.
type Options struct {
	Log               logger.Log
	Credentials       *db.Router
	Opener            Opener
	Driver            string
	Catalog           *catalog.Catalog
	Throttle          *auth.LoginThrottle
	View              View
	StrictRoles       bool
	AllowRegistration bool
}

// Handler serves every page of the back office.
type Handler struct {
	log               logger.Log
	creds             *db.Router
	opener            Opener
	driver            string
	catalog           *catalog.Catalog
	throttle          *auth.LoginThrottle
	view              View
	strict            bool
	allowRegistration bool
}

func NewHandler(o Options) *Handler {
	if o.View == nil {
		o.View = JSONView{}
	}
	if o.Log == nil {
		o.Log = logger.Discard()
	}
	return &Handler{
		log:               o.Log,
		creds:             o.Credentials,
		opener:            o.Opener,
		driver:            o.Driver,
		catalog:           o.Catalog,
		throttle:          o.Throttle,
		view:              o.View,
		strict:            o.StrictRoles,
		allowRegistration: o.AllowRegistration,
	}
}

func (h *Handler) flash(c *gin.Context, category, msg string) {
	currentSession(c).AddFlash(category, msg)
}

func (h *Handler) redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusFound, to)
}

// roleParams returns the credentials of the session's role. In strict mode an
// unrecognized role is an authentication failure instead of an admin login.
func (h *Handler) roleParams(c *gin.Context) (db.Params, error) {
	id, _ := currentSession(c).CurrentIdentity()
	if !h.strict {
		return h.creds.Resolve(string(id.Role)), nil
	}
	p, err := h.creds.ResolveStrict(string(id.Role))
	if err != nil {
		return db.Params{}, fmt.Errorf("%w: %w", apperrors.ErrAuthentication, err)
	}
	return p, nil
}

// open acquires a connection for p. On failure it queues the connection
// notice and returns false; the caller degrades gracefully.
func (h *Handler) open(c *gin.Context, p db.Params) (*db.Conn, bool) {
	conn, err := h.opener.Open(c.Request.Context(), p)
	if err != nil {
		h.log.ErrorErr("database connection failed", err, "db_user", p.User, "path", c.Request.URL.Path)
		cause := err
		var ce *apperrors.ConnectionError
		if errors.As(err, &ce) {
			cause = ce.Cause
		}
		h.flash(c, auth.FlashError, fmt.Sprintf("Database Connection Error: Could not connect to database. Please check your config.\nError: %v", cause))
		return nil, false
	}
	return conn, true
}

// openForRole opens a connection with the session role's credentials. A
// nil conn with answered unset means the connection failed and a notice was
// queued. answered means the role itself was rejected: the session has been
// cleared and the login redirect written.
func (h *Handler) openForRole(c *gin.Context) (conn *db.Conn, answered bool) {
	p, err := h.roleParams(c)
	if err != nil {
		h.log.Warn("rejected session role", "error", err.Error(), "path", c.Request.URL.Path)
		sess := currentSession(c)
		sess.Clear()
		sess.AddFlash(auth.FlashError, auth.NoticeLoginRequired)
		h.redirect(c, "/login")
		return nil, true
	}
	conn, _ = h.open(c, p)
	return conn, false
}

// load runs fn on a role-scoped connection for a read-only page. Query
// errors become a notice prefixed with failure; the page still renders with
// whatever fn collected. It returns false when the request was already
// answered and the caller must not render.
func (h *Handler) load(c *gin.Context, failure string, fn func(ctx context.Context, q *db.Conn) error) bool {
	conn, answered := h.openForRole(c)
	if conn == nil {
		return !answered
	}
	defer conn.Close()
	if err := fn(c.Request.Context(), conn); err != nil {
		h.log.ErrorErr("page query failed", err, "path", c.Request.URL.Path)
		h.flash(c, auth.FlashError, failure+err.Error())
	}
	return true
}

// mutation describes one single-statement write.
type mutation struct {
	back     string // list page to return to
	success  string
	notFound string // warning when no row matched; empty for inserts
	failure  string // prefix for datastore errors
	exec     func(ctx context.Context, tx *sql.Tx) (int64, error)
	after    func(ctx context.Context)
}

// mutate runs m inside a transaction on a role-scoped connection, queues the
// outcome as a notice and redirects back to the list page. A statement that
// matches no row is rolled back and reported as a warning.
func (h *Handler) mutate(c *gin.Context, m mutation) {
	conn, answered := h.openForRole(c)
	if conn == nil {
		if !answered {
			h.redirect(c, m.back)
		}
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	err := conn.InTx(ctx, func(tx *sql.Tx) error {
		n, err := m.exec(ctx, tx)
		if err != nil {
			return err
		}
		if m.notFound != "" && n == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
	switch {
	case err == nil:
		h.flash(c, auth.FlashSuccess, m.success)
		if m.after != nil {
			m.after(ctx)
		}
	case errors.Is(err, apperrors.ErrNotFound):
		h.flash(c, auth.FlashWarning, m.notFound)
	case apperrors.IsConstraint(err):
		h.log.Warn("write rejected by constraint", "error", err.Error(), "path", c.Request.URL.Path)
		h.flash(c, auth.FlashError, m.failure+err.Error())
	default:
		_ = c.Error(err)
		h.flash(c, auth.FlashError, m.failure+err.Error())
	}
	h.redirect(c, m.back)
}

// invalid reports a validation failure, if any, and redirects to back.
func (h *Handler) invalid(c *gin.Context, f *form, back string) bool {
	if verr := f.Err(); verr != nil {
		h.flash(c, auth.FlashError, verr.Message)
		h.redirect(c, back)
		return true
	}
	return false
}

// redirectTo answers GET on update routes, which only accept POST.
func redirectTo(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, path)
	}
}
