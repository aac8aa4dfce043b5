package response

import (
	"github.com/gin-gonic/gin"

	domainerrors "analytics-gate.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Anything that is not an AppError is treated
// as an internal failure and never leaks its message to the client.
func Error(c *gin.Context, err error) {
	appErr, ok := err.(*domainerrors.AppError)
	if !ok {
		appErr = domainerrors.InternalError(err)
	}

	body := gin.H{"error": appErr.Message}
	if appErr.Code != "" {
		body["code"] = appErr.Code
	}
	c.JSON(appErr.Status, body)
}
