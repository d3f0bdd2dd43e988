package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lexibazaar/marketplace/internal/auth"
	"github.com/lexibazaar/marketplace/internal/services"
)

// Machine-readable error codes.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
	CodeRateLimited  = "RATE_LIMITED"
)

// GetUserID extracts the authenticated user's ID from the Gin context.
// Returns 0 for anonymous callers.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // field name -> problem, for validation errors
}

// --- Error Response Helpers ---

// respondError maps a domain error to its status code. Anything that is not
// a *services.Error is unexpected and becomes a 500.
func respondError(c *gin.Context, err error, context string) {
	var serr *services.Error
	if !errors.As(err, &serr) {
		respondInternalError(c, err, context)
		return
	}

	status, code := statusForKind(serr.Kind)
	resp := ErrorResponse{Error: serr.Message, Code: code}
	if len(serr.Fields) > 0 {
		resp.Details = serr.Fields
	}
	c.JSON(status, resp)
}

func statusForKind(kind services.Kind) (int, string) {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest, CodeValidation
	case services.KindUnauthenticated:
		return http.StatusUnauthorized, CodeUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden, CodeForbidden
	case services.KindNotFound:
		return http.StatusNotFound, CodeNotFound
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeValidation})
}

// respondInternalError records the error for the request logger and sends a
// generic 500. The cause is never shown to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	c.Error(fmt.Errorf("%s: %w", context, err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeInternal})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the request body into dst. An empty body leaves dst
// untouched. Responds with 400 and returns false on malformed JSON.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// baseURL is the scheme and host the client used to reach us, for building
// absolute media URLs.
func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
