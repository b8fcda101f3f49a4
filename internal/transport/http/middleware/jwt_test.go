package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvboost/internal/pkg/jwtutil"
)

func protectedRouter(secret string, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{AuthJWT(secret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet(ContextUserIDKey)})
	})
	router.GET("/protected", handlers...)
	return router
}

func request(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT(t *testing.T) {
	router := protectedRouter("secret")

	token, err := jwtutil.GenerateToken("secret", time.Hour, 42, "a@b.com", "user")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, request(router, "Bearer "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Basic dXNlcjpwYXNz").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Bearer not.a.token").Code)

	expired, err := jwtutil.GenerateToken("secret", -time.Minute, 42, "a@b.com", "user")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Bearer "+expired).Code)
}

func TestRequireAdmin(t *testing.T) {
	router := protectedRouter("secret", RequireAdmin())

	userToken, err := jwtutil.GenerateToken("secret", time.Hour, 42, "a@b.com", "user")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, request(router, "Bearer "+userToken).Code)

	adminToken, err := jwtutil.GenerateToken("secret", time.Hour, 1, "root@b.com", "admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, request(router, "Bearer "+adminToken).Code)
}
