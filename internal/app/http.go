package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Nagamytreya123/PaduchuAndham/internal/account"
	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/credentials"
	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/federated"
	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/handler"
	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/provider"
	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/provider/google"
	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/token"
	"github.com/Nagamytreya123/PaduchuAndham/internal/config"
	"github.com/Nagamytreya123/PaduchuAndham/internal/middleware"
	"github.com/Nagamytreya123/PaduchuAndham/internal/oauthstate"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	tokens, err := token.New([]byte(cfg.JWTSecret), cfg.JWTTTL)
	if err != nil {
		return nil, nil, err
	}

	accountStore := account.NewPostgresStore(infra.DB)
	credentialService := credentials.NewService(accountStore, tokens)

	verifier := google.NewVerifier(cfg.ProviderTimeout)
	federatedService := federated.NewService(accountStore, tokens, verifier, federated.Policy{
		Audience:             cfg.GoogleClientID,
		RequireVerifiedEmail: cfg.RequireVerifiedEmail,
	})

	// the redirect flow needs full OAuth client credentials; the POST
	// token flow works without them
	var oauthProviders []provider.OAuthProvider
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" && cfg.GoogleRedirectURL != "" {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}
		oauthProviders = append(oauthProviders, googleProvider)
	}

	registry := provider.NewRegistry(oauthProviders...)
	states := oauthstate.NewRedisStore(infra.Redis)

	authHandler := handler.NewHandler(
		credentialService,
		federatedService,
		registry,
		states,
	)

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	api.GET("/me", authHandler.Me)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
