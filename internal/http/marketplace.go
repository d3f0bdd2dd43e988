package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexibazaar/marketplace/internal/services"
)

type MarketplaceController struct {
	marketplace *services.MarketplaceService
}

func NewMarketplaceController(marketplace *services.MarketplaceService) *MarketplaceController {
	return &MarketplaceController{marketplace: marketplace}
}

// List handles GET /marketplace. A signed-in caller gets is_owner and
// is_purchased filled in for them.
func (mc *MarketplaceController) List(c *gin.Context) {
	views, err := mc.marketplace.List(c.Request.Context(), GetUserID(c), baseURL(c))
	if err != nil {
		respondError(c, err, "list marketplace")
		return
	}
	c.JSON(http.StatusOK, views)
}
