package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database"`
}

type HealthController struct {
	db      Pinger
	version string
}

func NewHealthController(db Pinger, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status reports whether the service can reach its database.
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	status := "healthy"
	database := "ok"

	if h.db == nil {
		database = "not configured"
		status = "unhealthy"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			c.Error(err)
			database = "unreachable"
			status = "unhealthy"
		}
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:   status,
		Time:     time.Now().Format(time.RFC3339),
		Version:  h.version,
		Database: database,
	})
}
