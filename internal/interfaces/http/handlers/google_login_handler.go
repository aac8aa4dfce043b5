package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"analytics-gate.backend/pkg/googleauth"
	"analytics-gate.backend/pkg/logger"
	"analytics-gate.backend/pkg/redis"
)

// GoogleLoginHandler drives the browser OAuth flow used to obtain an ID
// token for the management plane. The state parameter is issued and
// consumed through redis, so a callback is only honored once.
type GoogleLoginHandler struct {
	oauth      *googleauth.OAuthClient
	stateStore *redis.StateStore
}

func NewGoogleLoginHandler(oauth *googleauth.OAuthClient, stateStore *redis.StateStore) *GoogleLoginHandler {
	return &GoogleLoginHandler{
		oauth:      oauth,
		stateStore: stateStore,
	}
}

// Login redirects the browser to Google's consent screen
func (h *GoogleLoginHandler) Login(c *gin.Context) {
	state, err := h.stateStore.Issue(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "failed to issue oauth state", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state))
}

// Callback exchanges the authorization code for tokens. The returned
// id_token is what the register endpoint expects as a Bearer token.
func (h *GoogleLoginHandler) Callback(c *gin.Context) {
	ok, err := h.stateStore.Consume(c.Request.Context(), c.Query("state"))
	if err != nil {
		logger.Error(c.Request.Context(), "oauth state lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, "/login?error=no_code")
		return
	}

	tokens, err := h.oauth.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		logger.Error(c.Request.Context(), "code exchange failed", zap.Error(err))
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Use this id_token in /register endpoint",
		"id_token":     tokens.IDToken,
		"access_token": tokens.AccessToken,
		"expires_in":   tokens.ExpiresIn,
	})
}

// Logout redirects back to the login page
func (h *GoogleLoginHandler) Logout(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}
