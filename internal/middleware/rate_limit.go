package middleware

import (
	"fmt"
	"net/http"
	"time"

	"slotbook/internal/caching"
	"slotbook/internal/common"

	"github.com/labstack/echo/v4"
)

// RateLimit caps requests per client IP for the wrapped route using the Redis
// counter. Redis being down fails open so an unhealthy cache cannot lock
// everyone out.
func RateLimit(cache caching.CacheService, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("%s:%s", c.Path(), c.RealIP())
			limited, err := cache.IsRateLimited(c.Request().Context(), key, limit, window)
			if err != nil {
				return next(c)
			}
			if limited {
				return c.JSON(http.StatusTooManyRequests, common.CreateErrorResponse("RATE_LIMITED", "Too many requests, try again later", nil))
			}
			return next(c)
		}
	}
}
