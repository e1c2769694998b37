package files

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/filevault/pkg/db"
	"github.com/dmitrymomot/filevault/pkg/id"
)

const fileColumns = `id, user_id, name, type, is_public, parent_id, local_path`

// Repository persists file metadata. Listings follow insertion order.
type Repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) *Repository {
	return &Repository{db: conn}
}

func (r *Repository) Create(ctx context.Context, f *File) error {
	const query = `INSERT INTO files (` + fileColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query, f.ID, f.UserID, f.Name, string(f.Type), f.IsPublic, parentArg(f.ParentID), f.LocalPath)
	if err != nil {
		return fmt.Errorf("files: insert: %w", err)
	}
	return nil
}

// FindByID returns a file regardless of its owner.
func (r *Repository) FindByID(ctx context.Context, fileID string) (*File, error) {
	if !id.IsObjectID(fileID) {
		return nil, ErrNotFound
	}
	return r.scanOne(r.db.QueryRow(ctx, `SELECT `+fileColumns+` FROM files WHERE id = $1`, fileID))
}

// FindByIDAndOwner returns a file owned by userID.
func (r *Repository) FindByIDAndOwner(ctx context.Context, fileID, userID string) (*File, error) {
	if !id.IsObjectID(fileID) {
		return nil, ErrNotFound
	}
	return r.scanOne(r.db.QueryRow(ctx,
		`SELECT `+fileColumns+` FROM files WHERE id = $1 AND user_id = $2`, fileID, userID))
}

// ListParams filters List. A nil Parent lists every file of the owner.
type ListParams struct {
	UserID string
	Parent *ParentRef
	Limit  int
	Offset int
}

func (r *Repository) List(ctx context.Context, p ListParams) ([]*File, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if p.Parent == nil {
		rows, err = r.db.Query(ctx,
			`SELECT `+fileColumns+` FROM files WHERE user_id = $1 ORDER BY seq LIMIT $2 OFFSET $3`,
			p.UserID, p.Limit, p.Offset)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT `+fileColumns+` FROM files WHERE user_id = $1 AND parent_id IS NOT DISTINCT FROM $2 ORDER BY seq LIMIT $3 OFFSET $4`,
			p.UserID, parentArg(*p.Parent), p.Limit, p.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("files: list: %w", err)
	}
	defer rows.Close()

	result := make([]*File, 0, p.Limit)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("files: list: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("files: list: %w", err)
	}
	return result, nil
}

// SetPublic updates the flag and returns the updated record in one statement.
func (r *Repository) SetPublic(ctx context.Context, fileID, userID string, public bool) (*File, error) {
	if !id.IsObjectID(fileID) {
		return nil, ErrNotFound
	}
	return r.scanOne(r.db.QueryRow(ctx,
		`UPDATE files SET is_public = $3 WHERE id = $1 AND user_id = $2 RETURNING `+fileColumns,
		fileID, userID, public))
}

// Count returns the number of file records.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("files: count: %w", err)
	}
	return n, nil
}

func (r *Repository) scanOne(row pgx.Row) (*File, error) {
	f, err := scanFile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("files: select: %w", err)
	}
	return f, nil
}

func scanFile(row pgx.Row) (*File, error) {
	var (
		f        File
		typ      string
		parentID *string
	)
	if err := row.Scan(&f.ID, &f.UserID, &f.Name, &typ, &f.IsPublic, &parentID, &f.LocalPath); err != nil {
		return nil, err
	}
	f.Type = Type(typ)
	if parentID != nil {
		f.ParentID = ParentRef(*parentID)
	}
	return &f, nil
}

// parentArg maps the root to SQL NULL.
func parentArg(p ParentRef) any {
	if p.IsRoot() {
		return nil
	}
	return string(p)
}
