package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/filevault/pkg/job"
)

const selectUser = "SELECT id, email, password_hash, created_at FROM users"

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueTx(ctx context.Context, tx pgx.Tx, name string, payload any, _ ...job.EnqueueOption) error {
	return m.Called(ctx, tx, name, payload).Error(0)
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func userRows(id, email, hash string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
		AddRow(id, email, hash, time.Now())
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}
