package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/internal/auth"
	"github.com/dmitrymomot/filevault/middlewares"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, email, password string) (string, bool, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Bool(1), args.Error(2)
}

func newTestApp(t *testing.T, users auth.Authenticator) (http.Handler, *auth.Tokens) {
	t.Helper()

	tokens := newMemoryTokens(t, auth.WithGenerator(func() string { return "tok-1" }))
	app := internal.New(
		internal.WithErrorHandler(middlewares.JSONErrorHandler()),
		internal.WithHandlers(auth.NewHandler(tokens, users)),
	)
	return app.Router(), tokens
}

func TestHandler_Connect(t *testing.T) {
	t.Parallel()

	users := &mockAuthenticator{}
	users.On("Authenticate", mock.Anything, "bob@dylan.com", "toto1234!").Return("user-1", true, nil)
	users.On("Authenticate", mock.Anything, "bob@dylan.com", "wrong").Return("", false, nil)
	users.On("Authenticate", mock.Anything, "db@down.com", "x").Return("", false, errors.New("db down"))

	tests := []struct {
		name       string
		email      string
		password   string
		basic      bool
		wantStatus int
		wantBody   string
	}{
		{name: "valid credentials", email: "bob@dylan.com", password: "toto1234!", basic: true, wantStatus: http.StatusOK, wantBody: `{"token":"tok-1"}`},
		{name: "wrong password", email: "bob@dylan.com", password: "wrong", basic: true, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Unauthorized"}`},
		{name: "no authorization header", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Unauthorized"}`},
		{name: "store failure", email: "db@down.com", password: "x", basic: true, wantStatus: http.StatusInternalServerError, wantBody: `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler, tokens := newTestApp(t, users)
			req := httptest.NewRequest(http.MethodGet, "/connect", nil)
			if tt.basic {
				req.SetBasicAuth(tt.email, tt.password)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			require.JSONEq(t, tt.wantBody, rec.Body.String())

			if tt.wantStatus == http.StatusOK {
				userID, ok, err := tokens.Resolve(context.Background(), "tok-1")
				require.NoError(t, err)
				require.True(t, ok)
				require.Equal(t, "user-1", userID)
			}
		})
	}
}

func TestHandler_Disconnect(t *testing.T) {
	t.Parallel()

	handler, tokens := newTestApp(t, &mockAuthenticator{})
	token, err := tokens.Issue(context.Background(), "user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/disconnect", nil)
	req.Header.Set("X-Token", token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, ok, err := tokens.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.False(t, ok)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}
