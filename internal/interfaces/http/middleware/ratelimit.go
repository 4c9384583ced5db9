package middleware

import (
	"net/http"
	"strconv"

	"github.com/garment/backend/internal/infrastructure/ratelimit"
	"github.com/garment/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitConfig holds configuration for the rate-limit middleware
type RateLimitConfig struct {
	Limiter *ratelimit.Limiter
	// Op names the protected operation; it is part of the counter key
	// so endpoints never share a budget
	Op string
	// KeyFunc scopes the budget to a caller; defaults to client IP
	KeyFunc func(*gin.Context) string
	Logger  *zap.Logger
}

// RateLimit enforces a fixed-window budget on a route. Rejected
// requests get 429 with a Retry-After header. Counter store failures
// fail open: throttling is protection, not a correctness gate.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}

	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	return func(c *gin.Context) {
		key := ratelimit.KeyFor(cfg.Op, keyFunc(c))

		decision, err := cfg.Limiter.Allow(c.Request.Context(), key)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("rate-limit store unavailable, allowing request",
					zap.String("op", cfg.Op),
					zap.Error(err),
				)
			}
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited, "Too many requests, try again later", c.GetString(RequestIDKey)))
			return
		}

		c.Next()
	}
}

// EntityScopedKey scopes a rate-limit budget to a path entity rather
// than the caller, so all writers to one entity share the budget.
func EntityScopedKey(params ...string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		key := ""
		for i, p := range params {
			if i > 0 {
				key += "/"
			}
			key += c.Param(p)
		}
		return key
	}
}
