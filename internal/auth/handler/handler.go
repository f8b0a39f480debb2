package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/credentials"
	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/federated"
	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/provider"
	"github.com/Nagamytreya123/PaduchuAndham/internal/oauthstate"
)

type Handler struct {
	credentials *credentials.Service
	federated   *federated.Service
	providers   *provider.Registry
	states      oauthstate.Store
}

func NewHandler(
	credentialService *credentials.Service,
	federatedService *federated.Service,
	registry *provider.Registry,
	states oauthstate.Store,
) *Handler {
	return &Handler{
		credentials: credentialService,
		federated:   federatedService,
		providers:   registry,
		states:      states,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/oauth/google", h.GoogleSignIn)

	r.GET("/oauth/login/:provider", h.redirectLogin)
	r.GET("/oauth/callback/:provider", h.callback)
}
