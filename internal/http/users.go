package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexibazaar/marketplace/internal/services"
)

// UserController serves the caller's own profile.
type UserController struct {
	profiles *services.ProfileService
}

func NewUserController(profiles *services.ProfileService) *UserController {
	return &UserController{profiles: profiles}
}

// Profile handles GET /user/profile.
func (uc *UserController) Profile(c *gin.Context) {
	view, err := uc.profiles.Get(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondError(c, err, "get profile")
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateProfile handles PUT and PATCH /user/profile. Only notification
// settings can change.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	var in services.ProfileInput
	if !bindJSON(c, &in) {
		return
	}

	view, err := uc.profiles.Update(c.Request.Context(), GetUserID(c), in)
	if err != nil {
		respondError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, view)
}
