package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// View renders a named page. Handlers hand it data and never build markup.
type View interface {
	Render(c *gin.Context, page string, data gin.H)
}

// pageData merges data with the pending notices (consuming them) and the
// current identity.
func pageData(c *gin.Context, page string, data gin.H) gin.H {
	sess := currentSession(c)
	out := gin.H{"page": page, "notices": sess.Flashes()}
	if id, ok := sess.CurrentIdentity(); ok {
		out["identity"] = id
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}

// JSONView renders pages as JSON documents.
type JSONView struct{}

func (JSONView) Render(c *gin.Context, page string, data gin.H) {
	c.JSON(http.StatusOK, pageData(c, page, data))
}

// HTMLView renders "<page>.html" from the templates loaded into the engine.
type HTMLView struct{}

func (HTMLView) Render(c *gin.Context, page string, data gin.H) {
	c.HTML(http.StatusOK, page+".html", pageData(c, page, data))
}
