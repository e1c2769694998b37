package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/filevault/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout attaches a deadline to the request context. Store calls made with
// the context observe it; a handler failing because the deadline passed
// yields a TimeoutError.
//
// The handler runs on the request goroutine, so a response that is already
// streaming is never written to concurrently.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				c.LogWarn("request timeout", "timeout", timeout.String())
				return errors.Join(&TimeoutError{Duration: timeout}, err)
			}
			return err
		}
	}
}
