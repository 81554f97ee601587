package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"madebuy/internal/handler/httperr"
	"madebuy/internal/pkg/config"
	"madebuy/internal/pkg/errs"
	"madebuy/internal/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware applies a fixed-window limit per client IP and tenant on
// the storefront validator. The limiter erring (store unreachable) fails open:
// cart validation is advisory, so dropping the brake beats dropping traffic.
func RateLimitMiddleware(limiter *ratelimit.Limiter, cfg config.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		key := c.ClientIP()
		if tenantID := c.GetHeader("X-Tenant-ID"); tenantID != "" {
			key += ":" + tenantID
		}

		decision, err := limiter.Check(c.Request.Context(), key, cfg.Limit, cfg.Window)
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request",
				"error", err, "client_ip", c.ClientIP())
			c.Next()
			return
		}

		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errs.New("rate limit exceeded"), "Rate limit exceeded", nil)
			return
		}

		c.Next()
	}
}
