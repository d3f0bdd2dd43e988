package http

import (
	"go.uber.org/zap"

	"github.com/lexibazaar/marketplace/internal/audit"
	"github.com/lexibazaar/marketplace/internal/auth"
	"github.com/lexibazaar/marketplace/internal/demo"
	"github.com/lexibazaar/marketplace/internal/services"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database Pinger
	Logger   *zap.Logger
	Auditor  *audit.Service

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	RateLimiter    *auth.RateLimiter

	// Domain flows
	Dictionaries *services.DictionaryService
	Marketplace  *services.MarketplaceService
	Words        *services.WordService
	Purchases    *services.PurchaseService
	Progress     *services.ProgressService
	Profiles     *services.ProfileService

	// Uploaded media, served under /media
	MediaRoot      string
	MaxUploadBytes int64

	CORSAllowedOrigins []string

	// Read-only demo mode (optional)
	DemoMiddleware *demo.Middleware

	// Application info
	Version string
}
