package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiddlewareRouter(t *testing.T) (*gin.Engine, *Service, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service, cleanup := setupTestService(t)
	middleware := NewMiddleware(service)

	router := gin.New()
	router.GET("/protected", middleware.Handler(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetUserID(c),
			"username": GetUsername(c),
		})
	})

	return router, service, cleanup
}

func TestMiddleware_RejectsMissingHeader(t *testing.T) {
	router, _, cleanup := setupMiddlewareRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "username\":")
}

func TestMiddleware_RejectsMalformedHeader(t *testing.T) {
	router, _, cleanup := setupMiddlewareRouter(t)
	defer cleanup()

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "garbage"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestMiddleware_RejectsInvalidToken(t *testing.T) {
	router, _, cleanup := setupMiddlewareRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_RejectsRefreshTokenAsBearer(t *testing.T) {
	router, service, cleanup := setupMiddlewareRouter(t)
	defer cleanup()

	user, err := service.Register("alice", "alice@x.co", "secret1")
	require.NoError(t, err)
	pair, err := service.IssueTokens(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Refresh)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_AcceptsValidAccessToken(t *testing.T) {
	router, service, cleanup := setupMiddlewareRouter(t)
	defer cleanup()

	user, err := service.Register("alice", "alice@x.co", "secret1")
	require.NoError(t, err)
	pair, err := service.IssueTokens(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Access)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}
