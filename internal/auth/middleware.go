package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lexibazaar/marketplace/internal/database"
	"github.com/lexibazaar/marketplace/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
)

// AnonymousUserID is the user id of unauthenticated callers.
const AnonymousUserID = uint(0)

// UserLookup loads the user named by a token.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*entities.User, error)
}

// Middleware authenticates requests with bearer access tokens.
type Middleware struct {
	tokens *Tokens
	users  UserLookup
}

func NewMiddleware(tokens *Tokens, users UserLookup) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// RequireAuth rejects requests without a valid access token.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, present := bearerToken(c)
		if !present {
			abortUnauthorized(c, "authentication credentials were not provided")
			return
		}
		if m.authenticate(c, raw) {
			c.Next()
		}
	}
}

// OptionalAuth lets anonymous requests through but still rejects a token
// that is present and invalid.
func (m *Middleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, present := bearerToken(c)
		if !present {
			c.Set(ContextKeyUserID, AnonymousUserID)
			c.Next()
			return
		}
		if m.authenticate(c, raw) {
			c.Next()
		}
	}
}

// authenticate sets the user in the context or aborts the request.
func (m *Middleware) authenticate(c *gin.Context, raw string) bool {
	userID, err := m.tokens.Parse(raw, TokenAccess)
	if err != nil {
		abortUnauthorized(c, "invalid or expired token")
		return false
	}

	user, err := m.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if database.IsNotFound(err) {
			abortUnauthorized(c, "user not found")
			return false
		}
		c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
			"code":  "INTERNAL_ERROR",
		})
		return false
	}

	c.Set(ContextKeyUserID, user.ID)
	c.Set(ContextKeyUsername, user.Username)
	return true
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// present is true whenever an Authorization header was sent, even a
// malformed one.
func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": msg,
		"code":  "UNAUTHORIZED",
	})
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns AnonymousUserID (0) if not authenticated.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return AnonymousUserID
}

// GetUsername retrieves the authenticated user's username from the context.
func GetUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUsername); exists {
		if username, ok := name.(string); ok {
			return username
		}
	}
	return ""
}
