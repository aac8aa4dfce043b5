package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"analytics-gate.backend/internal/domain/entities"
	"analytics-gate.backend/internal/interfaces/http/middleware"
	"analytics-gate.backend/internal/interfaces/http/response"
	"analytics-gate.backend/internal/usecases"
	"analytics-gate.backend/pkg/logger"
)

// AuthHandler serves the management plane: registration and the API key
// lifecycle, all behind verified Google identity.
type AuthHandler struct {
	tenantUsecase *usecases.TenantUsecase
}

func NewAuthHandler(tenantUsecase *usecases.TenantUsecase) *AuthHandler {
	return &AuthHandler{
		tenantUsecase: tenantUsecase,
	}
}

// Register registers the caller and issues an API key. The body is optional;
// an absent or empty body falls back to default application values.
func (h *AuthHandler) Register(c *gin.Context) {
	claims, ok := middleware.GetGoogleClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.tenantUsecase.Register(c.Request.Context(), claims, &input)
	if err != nil {
		logger.Error(c.Request.Context(), "Registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Registration failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"user":        resp.User,
		"application": resp.Application,
		"api_key":     resp.APIKey,
	})
}

// GetAPIKeys lists the caller's active keys
func (h *AuthHandler) GetAPIKeys(c *gin.Context) {
	claims, ok := middleware.GetGoogleClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	keys, err := h.tenantUsecase.ListKeys(c.Request.Context(), claims.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"google_id": claims.SubjectID,
			"email":     claims.Email,
		},
		"api_keys": keys,
	})
}

// RevokeAPIKey revokes the caller's key slot
func (h *AuthHandler) RevokeAPIKey(c *gin.Context) {
	claims, ok := middleware.GetGoogleClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	if err := h.tenantUsecase.RevokeKey(c.Request.Context(), claims.SubjectID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "API key revoked successfully",
	})
}

// RegenerateAPIKey rotates the caller's key slot and returns the new key
func (h *AuthHandler) RegenerateAPIKey(c *gin.Context) {
	claims, ok := middleware.GetGoogleClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	resp, err := h.tenantUsecase.RegenerateKey(c.Request.Context(), claims.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "API key regenerated successfully",
		"api_key":    resp.ApiKey,
		"created_at": resp.CreatedAt,
		"expires_at": resp.ExpiresAt,
	})
}
