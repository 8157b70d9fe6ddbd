package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-hq/taskflow-backend/internal/domain"
)

// WriteError maps the DAL error taxonomy onto HTTP statuses with the
// standard response envelope.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	case domain.IsValidation(err), errors.Is(err, domain.ErrUnknownAction):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
