package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexibazaar/marketplace/internal/services"
)

type WordController struct {
	words *services.WordService
}

func NewWordController(words *services.WordService) *WordController {
	return &WordController{words: words}
}

// Create handles POST /words/create.
func (wc *WordController) Create(c *gin.Context) {
	var in services.WordInput
	if !bindJSON(c, &in) {
		return
	}

	word, err := wc.words.Create(c.Request.Context(), GetUserID(c), in)
	if err != nil {
		respondError(c, err, "create word")
		return
	}
	c.JSON(http.StatusCreated, word)
}
