package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/bookshare/bookshare/internal/auth"
	"github.com/bookshare/bookshare/internal/config"
	"github.com/bookshare/bookshare/internal/database"
	"github.com/bookshare/bookshare/internal/database/books"
	"github.com/bookshare/bookshare/internal/database/favourites"
)

func testAuthConfig() config.Auth {
	return config.Auth{
		JWTSecret:            "test-secret",
		AccessTokenLifetime:  30 * time.Minute,
		RefreshTokenLifetime: 24 * time.Hour,
		BcryptCost:           4,
		MaxLoginAttempts:     5,
		RateLimitWindow:      15 * time.Minute,
		LockoutDuration:      30 * time.Minute,
	}
}

func setupTestServer(t *testing.T) (*gin.Engine, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cfg := testAuthConfig()
	authService := auth.NewService(db.DB, cfg)
	limiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	})

	router := NewRouter(RouterConfig{
		Database:        db,
		BooksStore:      books.NewRepository(db.DB),
		FavouritesStore: favourites.NewRepository(db.DB),
		AuthService:     authService,
		AuthMiddleware:  auth.NewMiddleware(authService),
		RateLimiter:     limiter,
		Version:         "test",
	})

	cleanup := func() {
		limiter.Stop()
		db.Close()
		os.Remove(dbPath)
	}
	return router, db, cleanup
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerUser creates an account through the API.
func registerUser(t *testing.T, router *gin.Engine, username, email, password string) {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/register/", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

// obtainTokens exchanges credentials for a token pair through the API.
func obtainTokens(t *testing.T, router *gin.Engine, username, password string) auth.TokenPair {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/token/", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	return pair
}

// registerAndLogin is the usual two-step onboarding collapsed for tests.
func registerAndLogin(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	registerUser(t, router, username, username+"@x.co", "secret1")
	return obtainTokens(t, router, username, "secret1").Access
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
