package handler

import (
	"errors"
	"log"

	"scoreservice/internal/interfaces"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/limiter"
	"github.com/labstack/echo/v4"
)

// RateLimit limits each client IP to perMinute requests. Limiter failures let
// the request through.
func RateLimit(l interfaces.Limiter, perMinute int) echo.MiddlewareFunc {
	limit := redis_rate.PerMinute(perMinute)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := l.Allow(c.Request().Context(), LimitKeyClient(c.RealIP()), limit)
			if errors.Is(err, limiter.ErrRateLimited) {
				return RestAbort(c, errorx.Wrap(err, errorx.RateLimiting))
			}
			if err != nil {
				log.Printf("[api] rate limiter: %v\n", err)
			}
			return next(c)
		}
	}
}

func LimitKeyClient(ip string) string {
	return "rate:" + ip
}
