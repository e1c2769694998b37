package files_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filevault/internal/files"
	"github.com/dmitrymomot/filevault/pkg/job"
	"github.com/dmitrymomot/filevault/pkg/storage"
)

const (
	queryByID      = `FROM files WHERE id = \$1$`
	queryByIDOwner = `FROM files WHERE id = \$1 AND user_id = \$2$`
	queryInsert    = `INSERT INTO files`
	querySetPublic = `UPDATE files SET is_public`
)

var fileColumns = []string{"id", "user_id", "name", "type", "is_public", "parent_id", "local_path"}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) Enqueue(ctx context.Context, name string, payload any, _ ...job.EnqueueOption) error {
	return m.Called(ctx, name, payload).Error(0)
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func newLocalStore(t *testing.T) *storage.Local {
	t.Helper()

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	return store
}

func strPtr(s string) *string { return &s }

func fileRows(records ...files.File) *pgxmock.Rows {
	rows := pgxmock.NewRows(fileColumns)
	for _, f := range records {
		var parent *string
		if !f.ParentID.IsRoot() {
			parent = strPtr(string(f.ParentID))
		}
		rows.AddRow(f.ID, f.UserID, f.Name, string(f.Type), f.IsPublic, parent, f.LocalPath)
	}
	return rows
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: 120, B: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func putContent(t *testing.T, store storage.Storage, data []byte) string {
	t.Helper()

	info, err := store.Put(context.Background(), bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return info.Key
}

func bytesReader(s string) *bytes.Reader { return bytes.NewReader([]byte(s)) }

func storageKey(key string) storage.Option { return storage.WithKey(key) }
