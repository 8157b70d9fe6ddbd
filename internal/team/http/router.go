package http

import "github.com/gin-gonic/gin"

// Register attaches team routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.listUsers)
	rg.PATCH("/:uid", h.updateProfile)
	rg.PATCH("/:uid/role", h.setRole)
}

// RegisterProjectSubroutes adds the per-project roster under the projects
// group.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.GET("/:id/team", h.listMembers)
}
