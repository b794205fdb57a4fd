package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "parcelhub/docs" // registers the swagger spec

	"parcelhub/internal/core/ports"
)

type RouterConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewRouter wires the API, health, metrics and swagger routes. A nil
// limiter disables rate limiting.
func NewRouter(
	server *Server,
	directory ports.UserDirectory,
	limiter RateLimiter,
	cfg RouterConfig,
	log *slog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	mws := []echo.MiddlewareFunc{ActorMiddleware(directory, log)}
	if limiter != nil && cfg.RateLimitRequests > 0 && cfg.RateLimitWindow > 0 {
		mws = append(mws, RateLimitMiddleware(limiter, cfg.RateLimitRequests, cfg.RateLimitWindow, log))
	}

	api := e.Group("/api/v1", mws...)

	api.POST("/shipments", server.CreateShipment)
	api.GET("/shipments", server.ListShipments)
	api.GET("/shipments/:id", server.GetShipment)
	api.POST("/shipments/:id/transitions", server.TransitionShipment)

	api.POST("/manifests", server.CreateManifest)
	api.POST("/manifests/:id/receive", server.ReceiveManifest)

	api.GET("/notifications", server.ListNotifications)
	api.GET("/notifications/unread-count", server.CountUnreadNotifications)
	api.POST("/notifications/read", server.MarkNotificationsRead)

	api.POST("/push-subscriptions", server.SubscribePush)
	api.DELETE("/push-subscriptions", server.UnsubscribePush)

	return e
}
