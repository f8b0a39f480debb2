package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/credentials"
	"github.com/Nagamytreya123/PaduchuAndham/internal/logger"
	"github.com/Nagamytreya123/PaduchuAndham/internal/middleware"
)

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Email           string `json:"email"`
	Password        string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	identifier := req.UsernameOrEmail
	if identifier == "" {
		identifier = req.Email
	}

	tok, err := h.credentials.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		if errors.Is(err, credentials.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		logger.Error("login failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tok, "tokenType": "Bearer"})
}

// Me returns the authenticated caller's claims. Mounted behind
// RequireAuth.
func (h *Handler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       claims.Subject,
		"username": claims.Username,
		"roles":    claims.Roles,
	})
}
