package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexibazaar/marketplace/internal/services"
)

type PurchaseController struct {
	purchases *services.PurchaseService
}

func NewPurchaseController(purchases *services.PurchaseService) *PurchaseController {
	return &PurchaseController{purchases: purchases}
}

// Purchase handles POST /dictionaries/:id/purchase.
func (pc *PurchaseController) Purchase(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in services.PurchaseInput
	if !bindJSON(c, &in) {
		return
	}

	receipt, err := pc.purchases.Purchase(c.Request.Context(), GetUserID(c), id, in)
	if err != nil {
		respondError(c, err, "purchase dictionary")
		return
	}
	c.JSON(http.StatusCreated, receipt)
}
