package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"tourismBooking/internal/auth"
	"tourismBooking/models"
	"tourismBooking/pkg/logger"
)

const (
	sessionCtx  = "session"
	identityCtx = "identity"
)

// currentSession returns the request's session. Outside SessionMiddleware it
// returns a fresh anonymous session.
func currentSession(c *gin.Context) *auth.Session {
	if v, ok := c.Get(sessionCtx); ok {
		if s, ok := v.(*auth.Session); ok {
			return s
		}
	}
	s := auth.NewSession()
	c.Set(sessionCtx, s)
	return s
}

// SessionMiddleware loads the session before the handler runs and saves it
// right before the response headers go out, so handlers can redirect or
// render without saving explicitly.
func SessionMiddleware(store auth.Store, log logger.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Load(c.Request)
		if err != nil {
			log.ErrorErr("failed to load session", err, "path", c.Request.URL.Path)
			sess = auth.NewSession()
		}
		c.Set(sessionCtx, sess)

		sw := &sessionWriter{ResponseWriter: c.Writer}
		sw.save = func() {
			if err := store.Save(sw.ResponseWriter, sess); err != nil {
				log.ErrorErr("failed to save session", err, "path", c.Request.URL.Path)
			}
		}
		c.Writer = sw

		c.Next()

		// No-op when the handler already wrote a status or body.
		sw.flush()
	}
}

// sessionWriter saves the session once, before the first byte or status
// line reaches the client.
type sessionWriter struct {
	gin.ResponseWriter
	once sync.Once
	save func()
}

func (w *sessionWriter) flush() { w.once.Do(w.save) }

func (w *sessionWriter) WriteHeader(code int) {
	w.flush()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) WriteHeaderNow() {
	w.flush()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) WriteString(s string) (int, error) {
	w.flush()
	return w.ResponseWriter.WriteString(s)
}

// RequireRoles lets the request through only when the session identity holds
// one of roles. Otherwise it queues the guard's notice, redirects and aborts
// the chain so the handler never touches the datastore.
func RequireRoles(strict bool, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		d := auth.Authorize(sess, strict, roles...)
		if !d.Allowed() {
			sess.AddFlash(auth.FlashError, d.Notice)
			c.Redirect(http.StatusFound, d.Redirect)
			c.Abort()
			return
		}
		c.Set(identityCtx, d.Identity)
		c.Next()
	}
}

// LoggingMiddleware writes one record per request through a logger scoped
// to the request, at a level chosen by the response status.
func LoggingMiddleware(log logger.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.With("method", c.Request.Method, "path", c.Request.URL.Path, "client_ip", c.ClientIP())

		c.Next()

		status := c.Writer.Status()
		args := []any{"status", status, "latency", time.Since(start)}
		if q := c.Request.URL.RawQuery; q != "" {
			args = append(args, "query", q)
		}
		if id, ok := currentSession(c).CurrentIdentity(); ok {
			args = append(args, "user", id.Username, "role", id.Role)
		}
		switch {
		case status >= http.StatusInternalServerError:
			reqLog.Error("request failed", args...)
		case status >= http.StatusBadRequest:
			reqLog.Warn("request rejected", args...)
		default:
			reqLog.Info("request served", args...)
		}
		for _, e := range c.Errors {
			reqLog.ErrorErr("handler error", e.Err, "status", status)
		}
	}
}
