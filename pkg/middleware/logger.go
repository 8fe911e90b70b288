package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type LoggerOpts func(*middleware.RequestLoggerConfig)

// Logger logs one line per request. Server errors log at error level, client errors at warn.
func Logger(opts ...LoggerOpts) echo.MiddlewareFunc {
	cfg := middleware.RequestLoggerConfig{
		LogStatus:     true,
		LogLatency:    true,
		LogURI:        true,
		LogMethod:     true,
		LogRemoteIP:   true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: logRequest,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return middleware.RequestLoggerWithConfig(cfg)
}

// WithSkipPaths stops logging for the given route paths, such as health probes.
func WithSkipPaths(paths ...string) LoggerOpts {
	skip := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		skip[p] = struct{}{}
	}
	return func(cfg *middleware.RequestLoggerConfig) {
		cfg.Skipper = func(c echo.Context) bool {
			_, ok := skip[c.Path()]
			return ok
		}
	}
}

func logRequest(c echo.Context, v middleware.RequestLoggerValues) error {
	attrs := []slog.Attr{
		slog.String("method", v.Method),
		slog.String("uri", v.URI),
		slog.Int("status", v.Status),
		slog.Duration("latency", v.Latency),
		slog.String("remote_ip", v.RemoteIP),
	}

	level := slog.LevelInfo
	switch {
	case v.Status >= http.StatusInternalServerError:
		level = slog.LevelError
	case v.Status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}
	if v.Error != nil {
		attrs = append(attrs, slog.String("err", v.Error.Error()))
	}

	slog.LogAttrs(context.Background(), level, "REQUEST", attrs...)
	return nil
}
