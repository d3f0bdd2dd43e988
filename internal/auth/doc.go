// Package auth provides account registration, login and bearer-token
// authentication for the API.
//
// Clients exchange an email and password for a pair of HS256 JWTs: a short
// lived access token sent as "Authorization: Bearer <token>" and a longer
// lived refresh token that can be traded for a new pair at /auth/refresh.
//
// # Configuration
//
//	AUTH_SECRET_KEY=<random string>   # Generated at startup if empty
//	AUTH_ACCESS_TOKEN_TTL=60m         # Access token lifetime
//	AUTH_REFRESH_TOKEN_TTL=24h        # Refresh token lifetime
//	AUTH_BCRYPT_COST=12               # bcrypt cost factor
//	AUTH_MAX_LOGIN_ATTEMPTS=5         # Failed logins before lockout
//	AUTH_RATE_LIMIT_WINDOW=15m
//	AUTH_LOCKOUT_DURATION=30m
//
// # Usage
//
//	tokens := auth.NewTokens(secret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
//	authService := auth.NewService(userRepo, tokens, cfg.Auth.BcryptCost)
//	authMiddleware := auth.NewMiddleware(tokens, userRepo)
//	router.GET("/dictionaries", authMiddleware.RequireAuth(), handler)
//
// Extract the caller in handlers:
//
//	userID := auth.GetUserID(c) // 0 for anonymous callers
package auth
