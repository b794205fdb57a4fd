package http

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"parcelhub/internal/adapters/out/redis/ratelimit"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/logger"
)

// Identity headers set by the gateway after it verified the caller.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
	HeaderTenantID = "X-Tenant-ID"

	actorKey = "actor"
)

// ActorMiddleware builds the kernel.Actor of the request from the identity
// headers and records the identity in the user directory.
func ActorMiddleware(directory ports.UserDirectory, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := actorFromHeaders(c.Request().Header)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Reason:  ReasonUnauthenticated,
					Message: err.Error(),
				})
			}

			u, err := user.RestoreUser(actor.UserID(), actor.TenantID(), actor.Role())
			if err == nil {
				err = directory.Sync(c.Request().Context(), u)
			}
			if err != nil {
				log.WarnContext(c.Request().Context(), "sync user directory",
					logger.UserID(actor.UserID().String()), logger.Error(err))
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func actorFromHeaders(h http.Header) (kernel.Actor, error) {
	rawID, rawRole, rawTenant := h.Get(HeaderUserID), h.Get(HeaderUserRole), h.Get(HeaderTenantID)
	if rawID == "" || rawRole == "" || rawTenant == "" {
		return kernel.Actor{}, errors.New("identity headers are missing")
	}

	userID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.Actor{}, err
	}
	tenantID, err := kernel.UUIDFromString(rawTenant)
	if err != nil {
		return kernel.Actor{}, err
	}
	role, err := kernel.RoleFromString(rawRole)
	if err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(userID, role, tenantID)
}

func actorOf(c echo.Context) kernel.Actor {
	actor, _ := c.Get(actorKey).(kernel.Actor)
	return actor
}

// RateLimiter is the shared counter behind RateLimitMiddleware.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (ratelimit.Decision, error)
}

// RateLimitMiddleware limits each client per route. The client is the
// X-User-ID header, or the real IP for anonymous callers. When the store is
// unreachable requests go through.
func RateLimitMiddleware(limiter RateLimiter, limit int, window time.Duration, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			client := c.Request().Header.Get(HeaderUserID)
			if client == "" {
				client = c.RealIP()
			}

			decision, err := limiter.Allow(c.Request().Context(), client+":"+c.Path(), limit, window)
			if err != nil {
				log.WarnContext(c.Request().Context(), "rate limit store unavailable", logger.Error(err))
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			if !decision.Allowed {
				retry := int(math.Ceil(decision.RetryAfter.Seconds()))
				c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
				return c.JSON(http.StatusTooManyRequests, ErrorResponse{
					Code:    http.StatusTooManyRequests,
					Reason:  ReasonRateLimited,
					Message: "too many requests",
				})
			}
			return next(c)
		}
	}
}
