//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"madebuy/internal/handler/middleware"
	"madebuy/internal/pkg/jwt"
	"madebuy/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScopedRouter(t *testing.T, jwtService *jwt.Service, scope string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/protected", middleware.RequireScope(jwtService, scope), func(c *gin.Context) {
		claims, ok := middleware.ServiceClaims(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"service": claims.Service})
	})
	return router
}

func TestRequireScope(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)

	t.Run("accepts token with the required scope", func(t *testing.T) {
		token, err := jwtService.GenerateToken("checkout-svc", []string{jwt.ScopeCheckout})
		require.NoError(t, err)

		router := newScopedRouter(t, jwtService, jwt.ScopeCheckout)
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/protected", nil, token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects token missing the scope", func(t *testing.T) {
		token, err := jwtService.GenerateToken("orders-svc", []string{jwt.ScopeOrders})
		require.NoError(t, err)

		router := newScopedRouter(t, jwtService, jwt.ScopeCheckout)
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/protected", nil, token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects missing header", func(t *testing.T) {
		router := newScopedRouter(t, jwtService, jwt.ScopeCheckout)
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/protected", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		other := jwt.NewService("other-secret", time.Hour)
		token, err := other.GenerateToken("checkout-svc", []string{jwt.ScopeCheckout})
		require.NoError(t, err)

		router := newScopedRouter(t, jwtService, jwt.ScopeCheckout)
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/protected", nil, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := jwt.NewService("test-secret", -time.Minute)
		token, err := expired.GenerateToken("checkout-svc", []string{jwt.ScopeCheckout})
		require.NoError(t, err)

		router := newScopedRouter(t, jwtService, jwt.ScopeCheckout)
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/protected", nil, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
