package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexibazaar/marketplace/internal/services"
)

type ProgressController struct {
	progress *services.ProgressService
}

func NewProgressController(progress *services.ProgressService) *ProgressController {
	return &ProgressController{progress: progress}
}

// Get handles GET /dictionaries/:id/progress.
func (pc *ProgressController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := pc.progress.Get(c.Request.Context(), GetUserID(c), id)
	if err != nil {
		respondError(c, err, "get progress")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Save handles POST and PUT /dictionaries/:id/progress. It answers 201 when
// the progress record is created by this call, 200 otherwise.
func (pc *ProgressController) Save(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in services.ProgressInput
	if !bindJSON(c, &in) {
		return
	}

	view, created, err := pc.progress.Save(c.Request.Context(), GetUserID(c), id, in)
	if err != nil {
		respondError(c, err, "save progress")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, view)
}
