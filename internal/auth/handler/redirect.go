package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nagamytreya123/PaduchuAndham/internal/logger"
	"github.com/Nagamytreya123/PaduchuAndham/internal/oauthstate"
)

// redirectLogin starts the browser sign-in flow: a fresh state and PKCE
// verifier are stored server-side, then the user is sent to the
// provider's authorization page.
func (h *Handler) redirectLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown oauth provider"})
		return
	}

	attempt, err := h.states.Create(c.Request.Context(), providerName)
	if err != nil {
		logger.Error("failed to store oauth state", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign-in unavailable"})
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL(attempt.State, attempt.Challenge()))
}

func (h *Handler) callback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown oauth provider"})
		return
	}

	attempt, err := h.states.Consume(c.Request.Context(), c.Query("state"))
	if errors.Is(err, oauthstate.ErrNotFound) || (err == nil && attempt.Provider != providerName) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid state"})
		return
	}
	if err != nil {
		logger.Error("oauth state lookup failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign-in unavailable"})
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}

	identity, err := p.ExchangeCode(c.Request.Context(), code, attempt.CodeVerifier)
	if err != nil {
		logger.Warn("code exchange failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	tok, err := h.federated.SignInIdentity(c.Request.Context(), identity)
	if err != nil {
		logger.Error("federated sign-in failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign-in failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tok, "tokenType": "Bearer"})
}
