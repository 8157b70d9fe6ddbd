package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	httpapi "github.com/taskflow-hq/taskflow-backend/internal/api/http"
	"github.com/taskflow-hq/taskflow-backend/internal/activity"
)

// Handler serves the activity feed.
type Handler struct {
	feed *activity.Feed
}

func New(feed *activity.Feed) *Handler {
	return &Handler{feed: feed}
}

// Register attaches the feed routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
}

// RegisterProjectSubroutes adds the per-project feed under the projects
// group.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.GET("/:id/activity", h.listByProject)
}

func (h *Handler) list(c *gin.Context) {
	h.respond(c, c.Query("projectId"))
}

func (h *Handler) listByProject(c *gin.Context) {
	h.respond(c, c.Param("id"))
}

func (h *Handler) respond(c *gin.Context, projectID string) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid limit"})
			return
		}
		limit = n
	}

	items, err := h.feed.List(c.Request.Context(), projectID, limit)
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "activities": items})
}
