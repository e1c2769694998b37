package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ConnectionURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"url wins", Config{URL: "redis://cache:6380/1", Host: "x", Port: "1"}, "redis://cache:6380/1"},
		{"host and port", Config{Host: "cache", Port: "6380"}, "redis://cache:6380"},
		{"defaults", Config{}, "redis://localhost:6379"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.ConnectionURL())
		})
	}
}

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		client, err := Open(ctx, "")
		require.ErrorIs(t, err, ErrEmptyConnectionURL)
		require.Nil(t, client)
	})

	for _, url := range []string{"http://localhost:6379", "localhost:6379", "postgresql://localhost:6379"} {
		t.Run("rejects "+url, func(t *testing.T) {
			t.Parallel()

			client, err := Open(ctx, url)
			require.ErrorIs(t, err, ErrFailedToParseURL)
			require.Nil(t, client)
		})
	}
}

func TestOpen_Miniredis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := Open(ctx, "redis://"+mr.Addr(), WithRetry(1, time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, Healthcheck(client)(ctx))

	mr.Close()
	err = Healthcheck(client)(ctx)
	require.ErrorIs(t, err, ErrHealthcheckFailed)
}

func TestOpen_ConnectionFailed(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Open(context.Background(), "redis://"+addr,
		WithRetry(2, time.Millisecond),
		WithTimeouts(100*time.Millisecond, 100*time.Millisecond),
	)
	require.ErrorIs(t, err, ErrConnectionFailed)
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	err := Healthcheck(nil)(context.Background())
	require.ErrorIs(t, err, ErrHealthcheckFailed)
	require.ErrorIs(t, err, ErrNilClient)
}

type mockCloser struct {
	err    error
	closed bool
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.err
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	t.Run("calls Close", func(t *testing.T) {
		t.Parallel()

		c := &mockCloser{}
		require.NoError(t, Shutdown(c)(context.Background()))
		require.True(t, c.closed)
	})

	t.Run("propagates Close error", func(t *testing.T) {
		t.Parallel()

		closeErr := errors.New("close error")
		c := &mockCloser{err: closeErr}
		require.Equal(t, closeErr, Shutdown(c)(context.Background()))
	})
}

func TestWait(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, wait(ctx, time.Hour), context.Canceled)

	require.NoError(t, wait(context.Background(), time.Millisecond))
}
