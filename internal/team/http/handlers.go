package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/taskflow-hq/taskflow-backend/internal/api/http"
	"github.com/taskflow-hq/taskflow-backend/internal/auth"
	"github.com/taskflow-hq/taskflow-backend/internal/domain"
	"github.com/taskflow-hq/taskflow-backend/internal/team"
)

func (h *Handler) listMembers(c *gin.Context) {
	p := auth.FromContext(c)
	members, err := h.svc.ListMembers(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "members": members})
}

func (h *Handler) listUsers(c *gin.Context) {
	p := auth.FromContext(c)
	users, err := h.svc.ListUsers(c.Request.Context(), p)
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "users": users})
}

func (h *Handler) updateProfile(c *gin.Context) {
	var patch team.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p := auth.FromContext(c)
	if err := h.svc.UpdateProfile(c.Request.Context(), p, c.Param("uid"), patch); err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) setRole(c *gin.Context) {
	var req roleReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p := auth.FromContext(c)
	if err := h.svc.SetRole(c.Request.Context(), p, c.Param("uid"), domain.Role(req.Role)); err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
