package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "members-api.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Errors that are not an AppError are
// reported as internal errors.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.AsAppError(err)
	c.JSON(appErr.Status, gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}

// Message sends a body carrying only a human readable message.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
