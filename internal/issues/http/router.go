package http

import "github.com/gin-gonic/gin"

// Register attaches issue routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

// RegisterProjectSubroutes adds the per-project issue listing under the
// projects group.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.GET("/:id/issues", h.listByProject)
}
