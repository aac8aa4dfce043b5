package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"analytics-gate.backend/internal/domain/entities"
	"analytics-gate.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// GoogleClaimsKey is the context key for verified Google claims
	GoogleClaimsKey = "googleClaims"
)

// IdentityVerifier validates a Google ID token and returns its claims.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*entities.GoogleClaims, error)
}

// GoogleAuthMiddleware guards the management plane. A missing or malformed
// Authorization header is a client mistake (400); a present token that fails
// verification is an authentication failure (401).
func GoogleAuthMiddleware(verifier IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Authorization header with Bearer token is required",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn(c.Request.Context(), "Google token verification failed",
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid Google token",
			})
			return
		}

		c.Set(GoogleClaimsKey, claims)
		c.Next()
	}
}

// GetGoogleClaims gets the verified claims from context
func GetGoogleClaims(c *gin.Context) (*entities.GoogleClaims, bool) {
	value, exists := c.Get(GoogleClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*entities.GoogleClaims)
	return claims, ok
}
