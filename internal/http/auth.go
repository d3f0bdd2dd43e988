package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lexibazaar/marketplace/internal/audit"
	"github.com/lexibazaar/marketplace/internal/auth"
	"github.com/lexibazaar/marketplace/internal/entities"
)

// AuthController issues and rotates JWT token pairs.
type AuthController struct {
	service     *auth.Service
	rateLimiter *auth.RateLimiter
	auditor     *audit.Service
}

func NewAuthController(service *auth.Service, rateLimiter *auth.RateLimiter, auditor *audit.Service) *AuthController {
	return &AuthController{
		service:     service,
		rateLimiter: rateLimiter,
		auditor:     auditor,
	}
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Register creates an account and signs it in.
// POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var in auth.RegisterInput
	if !bindJSON(c, &in) {
		return
	}

	user, pair, err := ac.service.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "register")
		return
	}

	ac.logAuth(c, user.ID, entities.AuditEventRegister, "Registered as "+user.Username)
	c.JSON(http.StatusCreated, pair)
}

// Login exchanges credentials for a token pair.
// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var in auth.LoginInput
	if !bindJSON(c, &in) {
		return
	}

	ip := c.ClientIP()
	if ac.rateLimiter != nil {
		if allowed, retryAfter := ac.rateLimiter.Allow(ip, in.Email); !allowed {
			respondRateLimited(c, retryAfter)
			return
		}
	}

	user, pair, err := ac.service.Login(c.Request.Context(), in)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(c, err, "login")
			return
		}

		var userID uint
		if user != nil {
			userID = user.ID
		}
		ac.logAuth(c, userID, entities.AuditEventLoginFailed, "Failed login for "+in.Email)

		if ac.rateLimiter != nil {
			ac.rateLimiter.RecordFailure(ip, in.Email)
		}
		respondError(c, err, "login")
		return
	}

	if ac.rateLimiter != nil {
		ac.rateLimiter.RecordSuccess(ip, in.Email)
	}
	ac.logAuth(c, user.ID, entities.AuditEventLogin, "Logged in")
	c.JSON(http.StatusOK, pair)
}

// Refresh rotates a refresh token into a new pair.
// POST /auth/refresh
func (ac *AuthController) Refresh(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Refresh == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "refresh token is required",
			Code:    CodeValidation,
			Details: map[string]string{"refresh": "This field is required."},
		})
		return
	}

	pair, err := ac.service.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, err, "refresh token")
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (ac *AuthController) logAuth(c *gin.Context, userID uint, eventType entities.AuditEventType, description string) {
	if ac.auditor == nil {
		return
	}
	ac.auditor.LogAuth(c.Request.Context(), userID, eventType, description)
}

func respondRateLimited(c *gin.Context, retryAfter time.Duration) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))
	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error: "too many login attempts, please try again later",
		Code:  CodeRateLimited,
	})
}
