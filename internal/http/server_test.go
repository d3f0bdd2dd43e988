package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lexibazaar/marketplace/internal/access"
	"github.com/lexibazaar/marketplace/internal/audit"
	"github.com/lexibazaar/marketplace/internal/auth"
	"github.com/lexibazaar/marketplace/internal/covers"
	"github.com/lexibazaar/marketplace/internal/database"
	dbaudit "github.com/lexibazaar/marketplace/internal/database/audit"
	"github.com/lexibazaar/marketplace/internal/database/dbtest"
	"github.com/lexibazaar/marketplace/internal/database/dictionaries"
	"github.com/lexibazaar/marketplace/internal/database/progress"
	"github.com/lexibazaar/marketplace/internal/database/purchases"
	"github.com/lexibazaar/marketplace/internal/database/users"
	"github.com/lexibazaar/marketplace/internal/database/words"
	"github.com/lexibazaar/marketplace/internal/images"
	"github.com/lexibazaar/marketplace/internal/services"
)

const testPurchaseCode = "1013"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router    *gin.Engine
	db        *gorm.DB
	mediaRoot string
}

// newTestServer wires the real services against a throwaway sqlite
// database. opts may adjust the router config before the router is built.
func newTestServer(t *testing.T, opts ...func(*RouterConfig)) *testServer {
	t.Helper()

	db := dbtest.Open(t)
	mediaRoot := t.TempDir()

	coverStore, err := covers.NewStore(mediaRoot, 1<<20)
	require.NoError(t, err)

	userRepo := users.NewRepository(db)
	purchaseRepo := purchases.NewRepository(db)
	auditor := audit.NewService(dbaudit.NewRepository(db), nil)

	deps := services.Dependencies{
		Dictionaries: dictionaries.NewRepository(db),
		Words:        words.NewRepository(db),
		Purchases:    purchaseRepo,
		Progress:     progress.NewRepository(db),
		Users:        userRepo,
		Policy:       access.NewPolicy(purchaseRepo),
		Images:       images.NoopFinder{},
		Covers:       coverStore,
		Auditor:      auditor,
		PurchaseCode: testPurchaseCode,
	}

	tokens := auth.NewTokens("test-secret", time.Hour, 24*time.Hour)
	limiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     3,
		WindowDuration:  time.Minute,
		LockoutDuration: time.Minute,
	})
	t.Cleanup(limiter.Stop)

	cfg := RouterConfig{
		Database:       &database.Database{DB: db},
		Auditor:        auditor,
		AuthService:    auth.NewService(userRepo, tokens, bcrypt.MinCost),
		AuthMiddleware: auth.NewMiddleware(tokens, userRepo),
		RateLimiter:    limiter,
		Dictionaries:   services.NewDictionaryService(deps),
		Marketplace:    services.NewMarketplaceService(deps),
		Words:          services.NewWordService(deps),
		Purchases:      services.NewPurchaseService(deps),
		Progress:       services.NewProgressService(deps),
		Profiles:       services.NewProfileService(deps),
		MediaRoot:      mediaRoot,
		MaxUploadBytes: 1 << 20,
		Version:        "test",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &testServer{
		router:    NewRouter(cfg),
		db:        db,
		mediaRoot: mediaRoot,
	}
}

// do sends a JSON request. body may be nil; token may be empty.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// register signs up username and returns its access token.
func (s *testServer) register(t *testing.T, username string) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var pair auth.TokenPair
	decode(t, w, &pair)
	require.NotEmpty(t, pair.Access)
	return pair.Access
}

// createDictionary posts a dictionary and returns its view.
func (s *testServer) createDictionary(t *testing.T, token string, body map[string]any) services.DictionaryView {
	t.Helper()

	w := s.do(t, http.MethodPost, "/dictionaries/create", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var view services.DictionaryView
	decode(t, w, &view)
	return view
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	decode(t, w, &body)
	return body
}

type errorBody struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details"`
}

func forSale(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": "Everyday vocabulary",
		"source_lang": "en",
		"target_lang": "es",
		"price":       "4.99",
		"is_for_sale": true,
	}
}

func privateDictionary(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"source_lang": "en",
		"target_lang": "fr",
	}
}
