package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/filevault/internal"
)

// Logging writes one record per request with method, path, status, size and duration.
// Register it first so the status reflects errors rendered further down the chain.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			level := slog.LevelInfo
			if rw.Status() >= 500 {
				level = slog.LevelError
			}
			c.Logger().LogAttrs(c, level, "request",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", rw.Status()),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}
