package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filevault/internal"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *internal.HTTPError
		code int
	}{
		{"bad request", internal.ErrBadRequest("Missing name"), http.StatusBadRequest},
		{"unauthorized", internal.ErrUnauthorized("Unauthorized"), http.StatusUnauthorized},
		{"not found", internal.ErrNotFound("Not found"), http.StatusNotFound},
		{"internal", internal.ErrInternal("Failed to update the file"), http.StatusInternalServerError},
		{"unavailable", internal.ErrServiceUnavailable("Unavailable"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.code, tt.err.StatusCode())
			require.Equal(t, tt.err.Message, tt.err.Error())
			require.NoError(t, tt.err.Unwrap())
		})
	}
}

func TestHTTPError_WithError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := internal.ErrInternal("Failed to update the file", internal.WithError(cause))

	require.ErrorIs(t, err, cause)
	require.Equal(t, "Failed to update the file: connection reset", err.Error())
	require.Equal(t, "Failed to update the file", err.Message)
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("handler: %w", internal.ErrNotFound("Not found"))
	httpErr, ok := internal.AsHTTPError(wrapped)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, httpErr.Code)

	_, ok = internal.AsHTTPError(errors.New("plain"))
	require.False(t, ok)

	_, ok = internal.AsHTTPError(nil)
	require.False(t, ok)
}
