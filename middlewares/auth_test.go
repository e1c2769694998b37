package middlewares_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/middlewares"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, token string) (string, bool, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Bool(1), args.Error(2)
}

func newAuthRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	if token != "" {
		req.Header.Set("x-token", token)
	}
	return req
}

func TestAuth(t *testing.T) {
	t.Parallel()

	resolver := &mockResolver{}
	resolver.On("Resolve", mock.Anything, "valid").Return("user-1", true, nil)
	resolver.On("Resolve", mock.Anything, "expired").Return("", false, nil)
	resolver.On("Resolve", mock.Anything, "broken").Return("", false, errors.New("redis down"))

	tests := []struct {
		name       string
		token      string
		wantUser   string
		wantStatus int
		wantErr    bool
	}{
		{name: "valid token", token: "valid", wantUser: "user-1"},
		{name: "missing token", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", token: "expired", wantStatus: http.StatusUnauthorized},
		{name: "store failure", token: "broken", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestContext(httptest.NewRecorder(), newAuthRequest(tt.token))
			var gotUser, gotToken string
			err := middlewares.Auth(resolver)(func(c internal.Context) error {
				gotUser = middlewares.UserID(c)
				gotToken = middlewares.Token(c)
				return nil
			})(c)

			switch {
			case tt.wantStatus != 0:
				httpErr, ok := internal.AsHTTPError(err)
				require.True(t, ok)
				require.Equal(t, tt.wantStatus, httpErr.Code)
				require.Equal(t, "Unauthorized", httpErr.Message)
				require.Empty(t, gotUser)
			case tt.wantErr:
				require.Error(t, err)
				_, ok := internal.AsHTTPError(err)
				require.False(t, ok)
			default:
				require.NoError(t, err)
				require.Equal(t, tt.wantUser, gotUser)
				require.Equal(t, tt.token, gotToken)
			}
		})
	}
}

func TestAuth_BearerToken(t *testing.T) {
	t.Parallel()

	resolver := &mockResolver{}
	resolver.On("Resolve", mock.Anything, "bearer-tok").Return("user-2", true, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bearer-tok")
	c := newTestContext(httptest.NewRecorder(), req)

	var got string
	err := middlewares.Auth(resolver)(func(c internal.Context) error {
		got = middlewares.UserID(c)
		return nil
	})(c)
	require.NoError(t, err)
	require.Equal(t, "user-2", got)
}

func TestOptionalAuth(t *testing.T) {
	t.Parallel()

	resolver := &mockResolver{}
	resolver.On("Resolve", mock.Anything, "valid").Return("user-1", true, nil)
	resolver.On("Resolve", mock.Anything, "expired").Return("", false, nil)

	tests := []struct {
		name     string
		token    string
		wantUser string
	}{
		{name: "valid token", token: "valid", wantUser: "user-1"},
		{name: "missing token is anonymous", token: ""},
		{name: "unknown token is anonymous", token: "expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestContext(httptest.NewRecorder(), newAuthRequest(tt.token))
			called := false
			err := middlewares.OptionalAuth(resolver)(func(c internal.Context) error {
				called = true
				require.Equal(t, tt.wantUser, middlewares.UserID(c))
				return nil
			})(c)

			require.NoError(t, err)
			require.True(t, called)
		})
	}
}

func TestOptionalAuth_StoreError(t *testing.T) {
	t.Parallel()

	resolver := &mockResolver{}
	resolver.On("Resolve", mock.Anything, "valid").Return("", false, errors.New("connection refused"))

	var logs bytes.Buffer
	c := newTestContext(httptest.NewRecorder(), newAuthRequest("valid"))
	c.logger = slog.New(slog.NewTextHandler(&logs, nil))

	called := false
	err := middlewares.OptionalAuth(resolver)(func(c internal.Context) error {
		called = true
		require.Empty(t, middlewares.UserID(c))
		require.Empty(t, middlewares.Token(c))
		return nil
	})(c)

	require.NoError(t, err)
	require.True(t, called)
	require.Contains(t, logs.String(), "level=WARN")
	require.Contains(t, logs.String(), "connection refused")
}

func TestUserIDExtractor(t *testing.T) {
	t.Parallel()

	resolver := &mockResolver{}
	resolver.On("Resolve", mock.Anything, "valid").Return("user-9", true, nil)

	c := newTestContext(httptest.NewRecorder(), newAuthRequest("valid"))
	_ = middlewares.Auth(resolver)(func(c internal.Context) error {
		attr, ok := middlewares.UserIDExtractor()(c)
		require.True(t, ok)
		require.Equal(t, "user-9", attr.Value.String())
		return nil
	})(c)

	_, ok := middlewares.UserIDExtractor()(context.Background())
	require.False(t, ok)
}
