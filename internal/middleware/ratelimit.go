package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimit returns a fixed-window limiter keyed by route and client IP,
// intended for the credential endpoints (register/login) to damp brute
// force attempts. The counter lives in Redis so the limit holds across
// replicas. A nil client or a non-positive max disables the limiter; a
// Redis error fails open so an unavailable Redis never blocks logins.
func RateLimit(rdb *redis.Client, max int, window time.Duration) echo.MiddlewareFunc {
	if rdb == nil || max <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("rl:%s:%s", c.Path(), c.RealIP())
			ctx := c.Request().Context()

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if n == 1 {
				rdb.Expire(ctx, key, window)
			}
			if n > int64(max) {
				retry := window
				if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					retry = ttl
				}
				c.Response().Header().Set("Retry-After",
					strconv.Itoa(int(retry.Round(time.Second).Seconds())))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"message": "Too many requests"})
			}
			return next(c)
		}
	}
}
