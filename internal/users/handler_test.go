package users_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/internal/users"
	"github.com/dmitrymomot/filevault/middlewares"
)

type staticTokens map[string]string

func (s staticTokens) Resolve(_ context.Context, token string) (string, bool, error) {
	userID, ok := s[token]
	return userID, ok, nil
}

func newHandler(t *testing.T, pool pgxmock.PgxPoolIface, jobs users.Enqueuer) http.Handler {
	t.Helper()

	svc := users.NewService(pool, jobs, users.WithBcryptCost(bcrypt.MinCost))
	app := internal.New(
		internal.WithErrorHandler(middlewares.JSONErrorHandler()),
		internal.WithHandlers(users.NewHandler(svc, staticTokens{"tok": "u1", "ghost": "u404"})),
	)
	return app.Router()
}

func TestHandler_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		setup      func(pool pgxmock.PgxPoolIface, jobs *mockEnqueuer)
		wantStatus int
		wantError  string
	}{
		{name: "missing email", body: `{"password":"x"}`, wantStatus: http.StatusBadRequest, wantError: "Missing email"},
		{name: "empty body", body: ``, wantStatus: http.StatusBadRequest, wantError: "Missing email"},
		{name: "missing password", body: `{"email":"bob@dylan.com"}`, wantStatus: http.StatusBadRequest, wantError: "Missing password"},
		{name: "malformed json", body: `{"email":`, wantStatus: http.StatusBadRequest, wantError: "Invalid JSON body"},
		{
			name: "already exists",
			body: `{"email":"bob@dylan.com","password":"x"}`,
			setup: func(pool pgxmock.PgxPoolIface, _ *mockEnqueuer) {
				pool.ExpectQuery(selectUser).WithArgs("bob@dylan.com").WillReturnRows(userRows("u1", "bob@dylan.com", "h"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Already exists",
		},
		{
			name: "created",
			body: `{"email":"bob@dylan.com","password":"toto1234!"}`,
			setup: func(pool pgxmock.PgxPoolIface, jobs *mockEnqueuer) {
				pool.ExpectQuery(selectUser).WithArgs("bob@dylan.com").WillReturnError(pgx.ErrNoRows)
				pool.ExpectBegin()
				pool.ExpectQuery("INSERT INTO users").
					WithArgs(pgxmock.AnyArg(), "bob@dylan.com", pgxmock.AnyArg()).
					WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
				pool.ExpectCommit()
				jobs.On("EnqueueTx", mock.Anything, mock.Anything, users.WelcomeTaskName, mock.Anything).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool := newMockPool(t)
			jobs := &mockEnqueuer{}
			if tt.setup != nil {
				tt.setup(pool, jobs)
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			newHandler(t, pool, jobs).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				require.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rec.Body.String())
			} else {
				require.Contains(t, rec.Body.String(), `"email":"bob@dylan.com"`)
				require.Contains(t, rec.Body.String(), `"id":"`)
			}
			require.NoError(t, pool.ExpectationsWereMet())
		})
	}
}

func TestHandler_Me(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		token      string
		setup      func(pool pgxmock.PgxPoolIface)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "authenticated",
			token: "tok",
			setup: func(pool pgxmock.PgxPoolIface) {
				pool.ExpectQuery(selectUser).WithArgs("u1").WillReturnRows(userRows("u1", "bob@dylan.com", "h"))
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"id":"u1","email":"bob@dylan.com"}`,
		},
		{name: "no token", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Unauthorized"}`},
		{name: "unknown token", token: "bad", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Unauthorized"}`},
		{
			name:  "user deleted",
			token: "ghost",
			setup: func(pool pgxmock.PgxPoolIface) {
				pool.ExpectQuery(selectUser).WithArgs("u404").WillReturnError(pgx.ErrNoRows)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool := newMockPool(t)
			if tt.setup != nil {
				tt.setup(pool)
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.token != "" {
				req.Header.Set("X-Token", tt.token)
			}
			newHandler(t, pool, &mockEnqueuer{}).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			require.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
