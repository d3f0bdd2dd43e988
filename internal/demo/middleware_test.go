package demo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(enabled bool) *gin.Engine {
	router := gin.New()
	router.Use(NewMiddleware(enabled).Handler())
	ok := func(c *gin.Context) { c.String(http.StatusOK, "OK") }
	router.GET("/dictionaries", ok)
	router.POST("/dictionaries/create", ok)
	router.PATCH("/dictionaries/:id", ok)
	router.DELETE("/dictionaries/:id", ok)
	router.POST("/auth/login", ok)
	router.OPTIONS("/dictionaries", ok)
	return router
}

func TestNewMiddleware(t *testing.T) {
	if !NewMiddleware(true).IsEnabled() {
		t.Error("Expected middleware to be enabled")
	}
	if NewMiddleware(false).IsEnabled() {
		t.Error("Expected middleware to be disabled")
	}
}

func TestMiddleware_Enabled(t *testing.T) {
	router := newRouter(true)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/dictionaries", http.StatusOK},
		{http.MethodOptions, "/dictionaries", http.StatusOK},
		{http.MethodPost, "/auth/login", http.StatusOK},
		{http.MethodPost, "/dictionaries/create", http.StatusForbidden},
		{http.MethodPatch, "/dictionaries/1", http.StatusForbidden},
		{http.MethodDelete, "/dictionaries/1", http.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != tt.want {
			t.Errorf("%s %s: expected status %d, got %d", tt.method, tt.path, tt.want, w.Code)
		}
	}
}

func TestMiddleware_BlockedResponse(t *testing.T) {
	router := newRouter(true)

	req := httptest.NewRequest(http.MethodPost, "/dictionaries/create", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse JSON response: %v", err)
	}
	if body["code"] != "READ_ONLY" {
		t.Errorf("Expected code READ_ONLY, got %q", body["code"])
	}
	if body["error"] != blockedMessage {
		t.Errorf("Unexpected error message %q", body["error"])
	}
}

func TestMiddleware_DisabledPassesEverything(t *testing.T) {
	router := newRouter(false)

	req := httptest.NewRequest(http.MethodDelete, "/dictionaries/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 when disabled, got %d", w.Code)
	}
}
