// Package demo implements the read-only public demo mode.
package demo

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const blockedMessage = "this action is disabled in demo mode"

// Middleware blocks write operations in demo mode. Reads always pass, and
// so do the authentication endpoints so visitors can sign in.
type Middleware struct {
	enabled      bool
	allowedPaths []string
}

// NewMiddleware creates a demo mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{
		enabled:      enabled,
		allowedPaths: []string{"/auth/"},
	}
}

// IsEnabled returns whether demo mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled || isReadOnlyMethod(c.Request.Method) || m.isAllowedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": blockedMessage,
			"code":  "READ_ONLY",
		})
	}
}

func isReadOnlyMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func (m *Middleware) isAllowedPath(path string) bool {
	for _, allowed := range m.allowedPaths {
		if strings.HasPrefix(path, allowed) {
			return true
		}
	}
	return false
}
