package handler

import (
	"net/http"

	"scoreservice/internal/interfaces"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container          *do.Injector
	Mode               string
	Origins            []string
	RateLimitPerMinute int
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.HideBanner = true
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.HTTPErrorHandler = errorHandler
	r.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${id}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	if len(cfg.Origins) > 0 {
		r.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.Origins,
			AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
			MaxAge:       60 * 60,
		}))
	}

	// the limiter is only registered when a redis instance is configured for it
	if limiter, err := do.Invoke[interfaces.Limiter](cfg.Container); err == nil {
		r.Use(RateLimit(limiter, cfg.RateLimitPerMinute))
	}

	r.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "🤖")
	})

	s := groupScore{cfg.Container}
	r.GET("/scores/:username", s.GetUserScores)
	r.GET("/scores/:username/:mode", s.GetUserScoresByMode)
	r.GET("/scoreboard", s.GetScoreboard)

	return r, nil
}
