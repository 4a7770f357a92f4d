package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dasha/promptfolio/internal/service"
)

// AuthHandler handles identity exchange endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		auth: auth,
	}
}

type googleExchangeRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// ExchangeGoogle handles POST /auth/google. When Google rejects the token,
// the provider's own status code is passed through to the caller.
func (h *AuthHandler) ExchangeGoogle(c *gin.Context) {
	var req googleExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "access_token is required",
		})
		return
	}

	user, err := h.auth.ExchangeGoogleToken(c.Request.Context(), req.AccessToken)
	if err != nil {
		var providerErr *service.ProviderError
		if errors.As(err, &providerErr) {
			c.JSON(providerErr.Status, gin.H{
				"error": providerErr.Detail,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Token exchange failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, user)
}
