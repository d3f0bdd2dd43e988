package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/lexibazaar/marketplace/internal/access"
	"github.com/lexibazaar/marketplace/internal/audit"
	"github.com/lexibazaar/marketplace/internal/auth"
	"github.com/lexibazaar/marketplace/internal/covers"
	"github.com/lexibazaar/marketplace/internal/database"
	"github.com/lexibazaar/marketplace/internal/database/dictionaries"
	"github.com/lexibazaar/marketplace/internal/database/progress"
	"github.com/lexibazaar/marketplace/internal/database/purchases"
	"github.com/lexibazaar/marketplace/internal/database/users"
	"github.com/lexibazaar/marketplace/internal/database/words"
	"github.com/lexibazaar/marketplace/internal/http"
	"github.com/lexibazaar/marketplace/internal/images"
	"github.com/lexibazaar/marketplace/internal/services"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.DictionaryStore = (*dictionaries.Repository)(nil)
var _ services.WordStore = (*words.Repository)(nil)
var _ services.PurchaseStore = (*purchases.Repository)(nil)
var _ services.ProgressStore = (*progress.Repository)(nil)
var _ services.UserStore = (*users.Repository)(nil)

// access.Policy checks purchases directly against the repository
var _ access.PurchaseChecker = (*purchases.Repository)(nil)

// Authentication reads users through the same repository
var _ auth.UserRepository = (*users.Repository)(nil)
var _ auth.UserLookup = (*users.Repository)(nil)

// Health checks
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ services.ImageFinder = (*images.UnsplashClient)(nil)
var _ services.ImageFinder = images.NoopFinder{}
var _ services.CoverStorage = (*covers.Store)(nil)
var _ services.Auditor = (*audit.Service)(nil)
