package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"madebuy/internal/handler/httperr"
	"madebuy/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// RequireSweepSecret guards the cron-facing sweep endpoint with a static
// shared secret. An empty configured secret fails closed: boot validation
// should have rejected it, so treat the request as a server error rather
// than letting the route go unauthenticated.
func RequireSweepSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("sweep secret not configured"), "Internal server error", nil)
			return
		}

		header := c.GetHeader("Authorization")
		presented, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || presented == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing sweep credentials"), "Missing sweep credentials", nil)
			return
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("invalid sweep credentials"), "Invalid sweep credentials", nil)
			return
		}

		c.Next()
	}
}
