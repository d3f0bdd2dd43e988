package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexibazaar/marketplace/internal/audit"
	"github.com/lexibazaar/marketplace/internal/entities"
)

const auditPageSize = 100

type AuditController struct {
	auditor *audit.Service
}

func NewAuditController(auditor *audit.Service) *AuditController {
	return &AuditController{auditor: auditor}
}

// List handles GET /audit with the caller's most recent events. An optional
// ?type= narrows the list to one event type.
func (ac *AuditController) List(c *gin.Context) {
	var (
		events []entities.AuditEvent
		err    error
	)
	if eventType := c.Query("type"); eventType != "" {
		events, err = ac.auditor.RecentByType(c.Request.Context(), GetUserID(c), entities.AuditEventType(eventType), auditPageSize)
	} else {
		events, err = ac.auditor.Recent(c.Request.Context(), GetUserID(c), auditPageSize)
	}
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}
	c.JSON(http.StatusOK, events)
}
