package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/taskflow-hq/taskflow-backend/internal/domain"
)

const ctxPrincipal = "principal"

// FromContext returns the authenticated principal stored by the middleware.
// The zero Principal (empty id, empty role) means "not authenticated" and
// fails every permission check.
func FromContext(c *gin.Context) domain.Principal {
	if v, ok := c.Get(ctxPrincipal); ok {
		if p, ok := v.(domain.Principal); ok {
			return p
		}
	}
	return domain.Principal{}
}

func setPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(ctxPrincipal, p)
}
