package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/taskflow-hq/taskflow-backend/internal/api/http"
	"github.com/taskflow-hq/taskflow-backend/internal/auth"
	"github.com/taskflow-hq/taskflow-backend/internal/issues"
)

func (h *Handler) create(c *gin.Context) {
	var in issues.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p := auth.FromContext(c)
	id, err := h.svc.Create(c.Request.Context(), p, in)
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": id})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "issues": items})
}

func (h *Handler) listByProject(c *gin.Context) {
	items, err := h.svc.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "issues": items})
}

func (h *Handler) get(c *gin.Context) {
	issue, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "issue": issue})
}

func (h *Handler) update(c *gin.Context) {
	var patch issues.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p := auth.FromContext(c)
	if err := h.svc.Update(c.Request.Context(), p, c.Param("id"), patch); err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) delete(c *gin.Context) {
	p := auth.FromContext(c)
	if err := h.svc.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
