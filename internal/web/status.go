package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const statusTimeout = 2 * time.Second

// Probe opens and pings a fresh connection with the fallback credentials.
func (h *Handler) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()
	conn, err := h.opener.Open(ctx, h.creds.Resolve(""))
	if err != nil {
		return err
	}
	return conn.Close()
}

// Status reports whether the datastore is reachable.
func (h *Handler) Status(c *gin.Context) {
	if err := h.Probe(c.Request.Context()); err != nil {
		h.log.ErrorErr("status probe failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "driver": h.driver, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "driver": h.driver})
}
