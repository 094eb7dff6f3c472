package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"telatour/database/query"
	"telatour/database/repository"
	"telatour/models"
	reviewSvc "telatour/services/review"
	userSvc "telatour/services/user"
	"telatour/utils"
)

// respondError maps a service error to an HTTP status. Unknown errors
// become an opaque 500; the detail only goes to the log.
func respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	var badParam *query.BadParamError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": verr.Fields})
	case errors.As(err, &badParam):
		c.JSON(http.StatusBadRequest, gin.H{"error": badParam.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists"})
	case errors.Is(err, reviewSvc.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to modify this review"})
	case errors.Is(err, userSvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	default:
		utils.GetLogger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// contextString reads a string the auth middleware stored on the context.
func contextString(c *gin.Context, key string) string {
	v, ok := c.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
