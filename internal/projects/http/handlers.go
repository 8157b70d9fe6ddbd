package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/taskflow-hq/taskflow-backend/internal/api/http"
	"github.com/taskflow-hq/taskflow-backend/internal/auth"
	"github.com/taskflow-hq/taskflow-backend/internal/projects"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p := auth.FromContext(c)
	id, err := h.svc.Create(c.Request.Context(), p, req.Name, req.Description, req.Members)
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": id})
}

func (h *Handler) list(c *gin.Context) {
	member := c.Query("member")
	if member == "" && c.Query("mine") == "true" {
		member = auth.FromContext(c).ID
	}

	items, err := h.svc.List(c.Request.Context(), member)
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	project, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": project})
}

func (h *Handler) update(c *gin.Context) {
	var patch projects.Patch
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

func (h *Handler) addMember(c *gin.Context) {
	var req addMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p := auth.FromContext(c)
	if err := h.svc.AddMember(c.Request.Context(), p, c.Param("id"), req.UserID); err != nil {
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
