package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lexibazaar/marketplace/internal/auth"
	"github.com/lexibazaar/marketplace/internal/logging"
)

// NewRouter creates a Gin engine with all routes configured.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logging.RequestLogger(logger))
	router.Use(auth.SecurityHeadersMiddleware())
	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(corsMiddleware(cfg.CORSAllowedOrigins))
	}
	router.Use(auditClientMiddleware())
	if cfg.DemoMiddleware != nil && cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.Handler())
	}

	if cfg.MediaRoot != "" {
		router.Static("/media", cfg.MediaRoot)
	}

	healthController := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", healthController.Status)

	authController := NewAuthController(cfg.AuthService, cfg.RateLimiter, cfg.Auditor)
	authGroup := router.Group("/auth")
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/refresh", authController.Refresh)

	marketplaceController := NewMarketplaceController(cfg.Marketplace)
	router.GET("/marketplace", cfg.AuthMiddleware.OptionalAuth(), marketplaceController.List)

	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	userController := NewUserController(cfg.Profiles)
	protected.GET("/user/profile", userController.Profile)
	protected.PUT("/user/profile", userController.UpdateProfile)
	protected.PATCH("/user/profile", userController.UpdateProfile)

	dictionaryController := NewDictionaryController(cfg.Dictionaries, cfg.Words, cfg.MaxUploadBytes)
	purchaseController := NewPurchaseController(cfg.Purchases)
	progressController := NewProgressController(cfg.Progress)

	protected.GET("/dictionaries", dictionaryController.List)
	protected.POST("/dictionaries/create", dictionaryController.Create)
	protected.GET("/dictionaries/:id", dictionaryController.Detail)
	protected.PUT("/dictionaries/:id", dictionaryController.Update)
	protected.PATCH("/dictionaries/:id", dictionaryController.Update)
	protected.DELETE("/dictionaries/:id", dictionaryController.Delete)
	protected.GET("/dictionaries/:id/words", dictionaryController.Words)
	protected.POST("/dictionaries/:id/purchase", purchaseController.Purchase)
	protected.GET("/dictionaries/:id/progress", progressController.Get)
	protected.POST("/dictionaries/:id/progress", progressController.Save)
	protected.PUT("/dictionaries/:id/progress", progressController.Save)

	wordController := NewWordController(cfg.Words)
	protected.POST("/words/create", wordController.Create)

	auditController := NewAuditController(cfg.Auditor)
	protected.GET("/audit", auditController.List)

	return router
}
