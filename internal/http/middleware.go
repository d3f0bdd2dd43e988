package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lexibazaar/marketplace/internal/audit"
)

// auditClientMiddleware makes the caller's address and user agent available
// to audit events logged by the services.
func auditClientMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := audit.WithClient(c.Request.Context(), audit.Client{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
