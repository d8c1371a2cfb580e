package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewtech-backend/pkg/jwt"
)

func testManager() *jwt.Manager {
	return jwt.NewManager("test-secret", 15, 168)
}

func protectedRouter(manager *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", AuthMiddleware(manager), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": UserIDFromContext(c).String()})
	})
	r.GET("/admin", AuthMiddleware(manager), AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/public", OptionalAuthMiddleware(manager), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": IsAuthenticated(c)})
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	manager := testManager()
	r := protectedRouter(manager)

	userID := uuid.New()
	token, err := manager.GenerateAccessToken(userID.String(), "admin@viewtech.vn", "admin")
	require.NoError(t, err)

	w := get(r, "/private", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	r := protectedRouter(testManager())

	w := get(r, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsGarbage(t *testing.T) {
	r := protectedRouter(testManager())

	w := get(r, "/private", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	manager := testManager()
	r := protectedRouter(manager)

	token, err := manager.GenerateRefreshToken(uuid.New().String())
	require.NoError(t, err)

	w := get(r, "/private", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	other := jwt.NewManager("different-secret", 15, 168)
	token, err := other.GenerateAccessToken(uuid.New().String(), "x@viewtech.vn", "admin")
	require.NoError(t, err)

	r := protectedRouter(testManager())
	w := get(r, "/private", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddlewareBlocksEditors(t *testing.T) {
	manager := testManager()
	r := protectedRouter(manager)

	editorToken, err := manager.GenerateAccessToken(uuid.New().String(), "editor@viewtech.vn", "editor")
	require.NoError(t, err)
	adminToken, err := manager.GenerateAccessToken(uuid.New().String(), "admin@viewtech.vn", "admin")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", editorToken).Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin", adminToken).Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	r := protectedRouter(testManager())

	w := get(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestOptionalAuthIdentifiesUser(t *testing.T) {
	manager := testManager()
	r := protectedRouter(manager)

	token, err := manager.GenerateAccessToken(uuid.New().String(), "admin@viewtech.vn", "admin")
	require.NoError(t, err)

	w := get(r, "/public", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestOptionalAuthIgnoresBadToken(t *testing.T) {
	r := protectedRouter(testManager())

	w := get(r, "/public", "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}
