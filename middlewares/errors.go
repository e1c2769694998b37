package middlewares

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/filevault/internal"
)

// PanicError represents a recovered panic.
type PanicError struct {
	Value any    // The panic value
	Stack []byte // Stack trace (nil if disabled)
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// TimeoutError represents a request that exceeded its deadline.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

// IsPanicError returns true if the error is a PanicError.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

// IsTimeoutError returns true if the error is a TimeoutError.
func IsTimeoutError(err error) bool {
	_, ok := AsTimeoutError(err)
	return ok
}

// AsPanicError extracts the PanicError from an error if present.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsTimeoutError extracts the TimeoutError from an error if present.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// Messages rendered for errors that carry no user-facing text.
const (
	MessageInternal = "Internal server error"
	MessageTimeout  = "Request timeout"
)

// JSONErrorHandler renders handler errors as {"error": message}.
// HTTPErrors keep their status and message, timeouts map to 504 and other
// errors to a generic 500. Server errors are logged with the underlying cause.
func JSONErrorHandler() internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		status, message := http.StatusInternalServerError, MessageInternal
		if IsTimeoutError(err) {
			status, message = http.StatusGatewayTimeout, MessageTimeout
		} else if httpErr, ok := internal.AsHTTPError(err); ok {
			status, message = httpErr.Code, httpErr.Message
		}

		if status >= http.StatusInternalServerError {
			c.LogError("request failed",
				slog.Int("status", status),
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Any("error", err),
			)
		}

		return c.JSON(status, map[string]string{"error": message})
	}
}
