package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/federated"
	"github.com/Nagamytreya123/PaduchuAndham/internal/logger"
)

// googleTokenRequest accepts either idToken (One-Tap) or accessToken
// (popup token flow).
type googleTokenRequest struct {
	IDToken     string `json:"idToken"`
	AccessToken string `json:"accessToken"`
}

func (h *Handler) GoogleSignIn(c *gin.Context) {
	var req googleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	tok, err := h.federated.SignIn(c.Request.Context(), federated.TokenInput{
		IDToken:     req.IDToken,
		AccessToken: req.AccessToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, federated.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "idToken or accessToken required"})
		case errors.Is(err, federated.ErrInvalidProviderToken),
			errors.Is(err, federated.ErrAudienceMismatch),
			errors.Is(err, federated.ErrProfileIncomplete),
			errors.Is(err, federated.ErrEmailUnverified):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			// cause stays in the log, never the response body
			logger.Error("google sign-in failed", map[string]any{
				"error": err.Error(),
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "google sign-in failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tok, "tokenType": "Bearer"})
}
