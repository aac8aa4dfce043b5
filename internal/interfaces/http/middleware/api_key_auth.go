package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"analytics-gate.backend/internal/domain/entities"
	domainerrors "analytics-gate.backend/internal/domain/errors"
	"analytics-gate.backend/internal/interfaces/http/response"
	"analytics-gate.backend/pkg/logger"
)

const (
	// APIKeyHeader is the header carrying the data-plane API key
	APIKeyHeader = "x-api-key"
	// ApplicationIDKey is the context key for the key's application scope
	ApplicationIDKey = "applicationId"
)

const regenerateHint = "Please regenerate a new key using the /api/auth/regenerate-api-key endpoint."

// KeyAuthenticator resolves a presented API key to an accept/reject decision.
type KeyAuthenticator interface {
	Authenticate(ctx context.Context, headerKey string) (*entities.KeyDecision, error)
}

// APIKeyAuthMiddleware guards the data plane. Each rejection reason maps to
// a fixed status and body; a store failure is a 500, never a rejection.
func APIKeyAuthMiddleware(auth KeyAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := auth.Authenticate(c.Request.Context(), c.GetHeader(APIKeyHeader))
		if err != nil {
			logger.Error(c.Request.Context(), "API key lookup failed")
			response.Error(c, err)
			c.Abort()
			return
		}

		if decision.Accepted() {
			c.Set(ApplicationIDKey, decision.Context.ApplicationID)
			c.Next()
			return
		}

		switch decision.Reason {
		case entities.KeyMissing:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "API key required in x-api-key header",
			})
		case entities.KeyUnknown:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid API key",
			})
		case entities.KeyRevoked:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "API key has been revoked",
				"message": "Your API key has been revoked. " + regenerateHint,
				"code":    domainerrors.CodeKeyRevoked,
			})
		case entities.KeyExpired:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "API key has expired",
				"message":    "Your API key has expired. " + regenerateHint,
				"expired_at": decision.ExpiresAt,
				"code":       domainerrors.CodeKeyExpired,
			})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid API key",
			})
		}
	}
}

// GetApplicationID gets the authenticated application scope from context
func GetApplicationID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ApplicationIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
