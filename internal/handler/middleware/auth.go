package middleware

import (
	"net/http"
	"strings"

	"madebuy/internal/handler/httperr"
	"madebuy/internal/pkg/errs"
	"madebuy/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const ctxServiceClaimsKey = "service_claims"

// RequireScope validates the caller's service token and rejects tokens that do
// not carry the given scope. Claims are stored in the request context for
// downstream handlers and the access log.
func RequireScope(jwtService *jwt.Service, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing authorization header"), "Authorization header required", nil)
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("invalid authorization header"), "Invalid authorization header format", nil)
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		if !claims.HasScope(scope) {
			httperr.AbortWithError(c, http.StatusForbidden, errs.New("insufficient scope"), "Insufficient scope", nil)
			return
		}

		c.Set(ctxServiceClaimsKey, claims)
		c.Next()
	}
}

func ServiceClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ctxServiceClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
