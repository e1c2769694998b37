package files

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/filevault/pkg/job"
	"github.com/dmitrymomot/filevault/pkg/logger"
	"github.com/dmitrymomot/filevault/pkg/storage"
	"github.com/dmitrymomot/filevault/pkg/thumbnail"
)

const (
	ThumbnailTaskName = "files:thumbnails"
	ThumbnailQueue    = "files"
)

// ThumbnailPayload is the job payload for ThumbnailTask.
type ThumbnailPayload struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}

// ThumbnailTask writes the resized variants of an uploaded image.
type ThumbnailTask struct {
	repo   *Repository
	store  storage.Storage
	logger *slog.Logger
}

func NewThumbnailTask(repo *Repository, store storage.Storage, log *slog.Logger) *ThumbnailTask {
	if log == nil {
		log = logger.NewNope()
	}
	return &ThumbnailTask{repo: repo, store: store, logger: log}
}

func (t *ThumbnailTask) Name() string  { return ThumbnailTaskName }
func (t *ThumbnailTask) Queue() string { return ThumbnailQueue }

// Handle generates every width in ThumbnailWidths. The first failure aborts
// the remaining widths.
func (t *ThumbnailTask) Handle(ctx context.Context, p ThumbnailPayload) error {
	if p.FileID == "" {
		return job.Permanent(ErrMissingJobFileID)
	}
	if p.UserID == "" {
		return job.Permanent(ErrMissingJobUserID)
	}

	f, err := t.repo.FindByIDAndOwner(ctx, p.FileID, p.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, p.FileID)
		}
		return err
	}
	if f.Type != TypeImage || f.LocalPath == nil {
		return fmt.Errorf("%w: %s", ErrNotAnImage, p.FileID)
	}

	original, err := t.readOriginal(ctx, *f.LocalPath)
	if err != nil {
		return err
	}

	for _, width := range ThumbnailWidths {
		if err := t.writeVariant(ctx, *f.LocalPath, original, width); err != nil {
			return fmt.Errorf("files: thumbnail %d for %s: %w", width, f.ID, err)
		}
	}

	t.logger.InfoContext(ctx, "thumbnails generated",
		slog.String("file_id", f.ID), slog.Any("widths", ThumbnailWidths))
	return nil
}

func (t *ThumbnailTask) readOriginal(ctx context.Context, key string) ([]byte, error) {
	rc, err := t.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("files: open original: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("files: read original: %w", err)
	}
	return data, nil
}

func (t *ThumbnailTask) writeVariant(ctx context.Context, key string, original []byte, width int) error {
	var out bytes.Buffer
	format, err := thumbnail.Resize(&out, bytes.NewReader(original), width)
	if err != nil {
		return err
	}

	_, err = t.store.Put(ctx, &out, int64(out.Len()),
		storage.WithKey(VariantKey(key, width)),
		storage.WithContentType("image/"+format))
	return err
}
