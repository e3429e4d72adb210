package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/senselive/vms-api/internal/services"
	"github.com/senselive/vms-api/internal/statemachine"
	"github.com/senselive/vms-api/pkg/logger"
)

// respondError maps a service error onto the HTTP taxonomy: validation 400,
// authentication 401, state-conflict 403, not-found 404, anything else 500
// with a generic message and the detail logged server-side only.
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Reason})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrOldPasswordWrong):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case statemachine.IsConflict(err):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		logger.Error("Unhandled request error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
