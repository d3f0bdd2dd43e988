package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lexibazaar/marketplace/internal/database/dbtest"
	"github.com/lexibazaar/marketplace/internal/database/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupMiddleware(t *testing.T) (*gin.Engine, *Tokens, uint) {
	t.Helper()

	db := dbtest.Open(t)
	user := dbtest.CreateUser(t, db, "alice")
	tokens := NewTokens("test-secret", time.Minute, time.Hour)
	middleware := NewMiddleware(tokens, users.NewRepository(db))

	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "username": GetUsername(c)})
	}

	router := gin.New()
	router.GET("/private", middleware.RequireAuth(), handler)
	router.GET("/public", middleware.OptionalAuth(), handler)
	return router, tokens, user.ID
}

func doRequest(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestMiddleware_RequireAuth(t *testing.T) {
	router, tokens, userID := setupMiddleware(t)
	pair, _ := tokens.IssuePair(userID)
	ghost, _ := tokens.IssuePair(9999)

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
	}{
		{"valid token", "Bearer " + pair.Access, http.StatusOK},
		{"lowercase scheme", "bearer " + pair.Access, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"refresh token", "Bearer " + pair.Refresh, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"deleted user", "Bearer " + ghost.Access, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(router, "/private", tt.authorization)
			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestMiddleware_RequireAuthSetsUser(t *testing.T) {
	router, tokens, userID := setupMiddleware(t)
	pair, _ := tokens.IssuePair(userID)

	rr := doRequest(router, "/private", "Bearer "+pair.Access)

	var body struct {
		UserID   uint   `json:"user_id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.UserID != userID || body.Username != "alice" {
		t.Errorf("unexpected user in context: %+v", body)
	}
}

func TestMiddleware_UnauthorizedBody(t *testing.T) {
	router, _, _ := setupMiddleware(t)

	rr := doRequest(router, "/private", "")

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["code"] != "UNAUTHORIZED" || body["error"] == "" {
		t.Errorf("unexpected body %v", body)
	}
	if rr.Header().Get("WWW-Authenticate") == "" {
		t.Error("expected WWW-Authenticate header")
	}
}

func TestMiddleware_OptionalAuth(t *testing.T) {
	router, tokens, userID := setupMiddleware(t)
	pair, _ := tokens.IssuePair(userID)

	rr := doRequest(router, "/public", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("anonymous request should pass, got %d", rr.Code)
	}
	if !jsonHasUserID(t, rr, 0) {
		t.Error("anonymous caller should have user id 0")
	}

	rr = doRequest(router, "/public", "Bearer "+pair.Access)
	if rr.Code != http.StatusOK || !jsonHasUserID(t, rr, userID) {
		t.Errorf("authenticated request should carry the user, got %d %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(router, "/public", "Bearer invalid")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("invalid token should be rejected, got %d", rr.Code)
	}
}

func jsonHasUserID(t *testing.T, rr *httptest.ResponseRecorder, want uint) bool {
	t.Helper()
	var body struct {
		UserID uint `json:"user_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body.UserID == want
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := doRequest(router, "/x", "")
	for _, h := range []string{"X-Frame-Options", "X-Content-Type-Options", "Referrer-Policy", "Content-Security-Policy"} {
		if rr.Header().Get(h) == "" {
			t.Errorf("missing header %s", h)
		}
	}
	if rr.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS should not be set over plain HTTP")
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS should be set behind an HTTPS proxy")
	}
}
