package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	panicErr := errors.New("error panic")
	tests := []struct {
		name  string
		value any
	}{
		{"string", "test panic"},
		{"error", panicErr},
		{"int", 42},
		{"struct", struct{ Code int }{Code: 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
			err := middlewares.Recover()(func(internal.Context) error {
				panic(tt.value)
			})(c)

			pe, ok := middlewares.AsPanicError(err)
			require.True(t, ok)
			require.Equal(t, tt.value, pe.Value)
			require.NotEmpty(t, pe.Stack)
			require.True(t, middlewares.IsPanicError(err))
		})
	}
}

func TestRecover_NoPanic(t *testing.T) {
	t.Parallel()

	c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	sentinel := errors.New("handler error")

	err := middlewares.Recover()(func(internal.Context) error { return sentinel })(c)
	require.ErrorIs(t, err, sentinel)
	require.False(t, middlewares.IsPanicError(err))
}

func TestRecover_StackSize(t *testing.T) {
	t.Parallel()

	c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	err := middlewares.Recover(middlewares.WithRecoverStackSize(0))(func(internal.Context) error {
		panic("no stack")
	})(c)

	pe, ok := middlewares.AsPanicError(err)
	require.True(t, ok)
	require.Nil(t, pe.Stack)

	c = newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	err = middlewares.Recover(middlewares.WithRecoverStackSize(64))(func(internal.Context) error {
		panic("small stack")
	})(c)

	pe, ok = middlewares.AsPanicError(err)
	require.True(t, ok)
	require.LessOrEqual(t, len(pe.Stack), 64)
}
