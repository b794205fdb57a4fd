// Package logger builds the service's slog.Logger and the attribute helpers
// shared by every component.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Environments accepted by New.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// New returns a logger writing JSON at info level in production and text at
// debug level anywhere else. Every record carries the service and env attributes.
func New(service, env string) *slog.Logger {
	return NewWithOutput(os.Stdout, service, env)
}

func NewWithOutput(w io.Writer, service, env string) *slog.Logger {
	var handler slog.Handler
	if env == EnvProduction {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler).With(
		slog.String("service", service),
		slog.String("env", env),
	)
}

// Error records err under "error". A nil err yields an empty attribute,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func EventID(id string) slog.Attr {
	return slog.String("event_id", id)
}

func EventKind(kind string) slog.Attr {
	return slog.String("event_kind", kind)
}

func UserID(id string) slog.Attr {
	return slog.String("user_id", id)
}

func TenantID(id string) slog.Attr {
	return slog.String("tenant_id", id)
}
