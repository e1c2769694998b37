package files

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/filevault/pkg/id"
	"github.com/dmitrymomot/filevault/pkg/job"
	"github.com/dmitrymomot/filevault/pkg/logger"
	"github.com/dmitrymomot/filevault/pkg/storage"
)

// PageSize is the number of records per List page.
const PageSize = 20

// ThumbnailWidths are the widths of the image variants, in generation order.
var ThumbnailWidths = []int{500, 250, 100}

// Enqueuer schedules background jobs. *job.Manager implements it.
type Enqueuer interface {
	Enqueue(ctx context.Context, name string, payload any, opts ...job.EnqueueOption) error
}

// Service implements the file operations on top of a Repository and a Storage.
type Service struct {
	repo   *Repository
	store  storage.Storage
	jobs   Enqueuer
	logger *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(repo *Repository, store storage.Storage, jobs Enqueuer, opts ...ServiceOption) *Service {
	s := &Service{
		repo:   repo,
		store:  store,
		jobs:   jobs,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UploadParams is the input of Upload. Data is base64 content; it is
// ignored for folders.
type UploadParams struct {
	UserID   string
	Name     string
	Type     Type
	ParentID ParentRef
	IsPublic bool
	Data     string
}

// Upload validates params, stores the content and records the file.
// Images get a thumbnail job; failing to schedule it does not fail the upload.
func (s *Service) Upload(ctx context.Context, p UploadParams) (*File, error) {
	if p.Name == "" {
		return nil, ErrMissingName
	}
	if !p.Type.Valid() {
		return nil, ErrInvalidType
	}

	if p.Type != TypeFolder && p.Data == "" {
		return nil, ErrMissingData
	}

	// Any existing folder is a valid parent, whoever owns it.
	if !p.ParentID.IsRoot() {
		parent, err := s.repo.FindByID(ctx, string(p.ParentID))
		if errors.Is(err, ErrNotFound) {
			return nil, ErrParentNotFound
		}
		if err != nil {
			return nil, err
		}
		if parent.Type != TypeFolder {
			return nil, ErrParentNotFolder
		}
	}

	var content []byte
	if p.Type != TypeFolder {
		var err error
		if content, err = decodeBase64(p.Data); err != nil {
			return nil, errors.Join(ErrInvalidData, err)
		}
	}

	f := &File{
		ID:       id.NewObjectID(),
		UserID:   p.UserID,
		Name:     norm.NFC.String(p.Name),
		Type:     p.Type,
		IsPublic: p.IsPublic,
		ParentID: p.ParentID,
	}
	if f.ParentID.IsRoot() {
		f.ParentID = Root
	}

	if p.Type != TypeFolder {
		opts := []storage.Option{}
		if ct, ok := storage.MIMEFromName(f.Name); ok {
			opts = append(opts, storage.WithContentType(ct))
		}
		info, err := s.store.Put(ctx, bytes.NewReader(content), int64(len(content)), opts...)
		if err != nil {
			return nil, fmt.Errorf("files: store content: %w", err)
		}
		f.LocalPath = &info.Key
	}

	if err := s.repo.Create(ctx, f); err != nil {
		if f.LocalPath != nil {
			if derr := s.store.Delete(ctx, *f.LocalPath); derr != nil {
				s.logger.ErrorContext(ctx, "failed to remove orphaned content",
					slog.String("key", *f.LocalPath), slog.Any("error", derr))
			}
		}
		return nil, err
	}

	if f.Type == TypeImage {
		err := s.jobs.Enqueue(ctx, ThumbnailTaskName,
			ThumbnailPayload{FileID: f.ID, UserID: f.UserID},
			job.MaxAttempts(1))
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to schedule thumbnails",
				slog.String("file_id", f.ID), slog.Any("error", err))
		}
	}

	return f, nil
}

// Get returns a file owned by userID.
func (s *Service) Get(ctx context.Context, userID, fileID string) (*File, error) {
	return s.repo.FindByIDAndOwner(ctx, fileID, userID)
}

// List returns one page of the owner's files. A nil parent lists every file
// of the owner; a negative page is treated as the first one.
func (s *Service) List(ctx context.Context, userID string, parent *ParentRef, page int) ([]*File, error) {
	page = max(page, 0)
	return s.repo.List(ctx, ListParams{
		UserID: userID,
		Parent: parent,
		Limit:  PageSize,
		Offset: page * PageSize,
	})
}

// SetPublic publishes or unpublishes a file owned by userID.
func (s *Service) SetPublic(ctx context.Context, userID, fileID string, public bool) (*File, error) {
	f, err := s.repo.SetPublic(ctx, fileID, userID, public)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, errors.Join(ErrUpdateFailed, err)
	}
	return f, nil
}

// Content is an open file body. The caller closes Body.
type Content struct {
	Body        io.ReadCloser
	ContentType string
	Name        string
}

// Content opens the bytes of a file, or of one of its image variants when
// size is set. Private files are visible to their owner only; callerID is ""
// for anonymous requests.
func (s *Service) Content(ctx context.Context, callerID, fileID, size string) (*Content, error) {
	f, err := s.repo.FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !f.IsPublic && (callerID == "" || callerID != f.UserID) {
		return nil, ErrNotFound
	}
	if !f.HasContent() {
		return nil, ErrFolderHasNoData
	}

	key := *f.LocalPath
	if size != "" {
		width, err := strconv.Atoi(size)
		if err != nil || !slices.Contains(ThumbnailWidths, width) {
			return nil, ErrInvalidSize
		}
		key = VariantKey(key, width)
	}

	body, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("files: open content: %w", err)
	}

	contentType, ok := storage.MIMEFromName(f.Name)
	if !ok {
		_ = body.Close()
		return nil, ErrUnknownMIME
	}

	return &Content{Body: body, ContentType: contentType, Name: f.Name}, nil
}

// Count returns the number of file records.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// VariantKey is the storage key of the image variant of the given width.
func VariantKey(key string, width int) string {
	return key + "_" + strconv.Itoa(width)
}

// decodeBase64 accepts padded and unpadded standard encoding.
func decodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if data, rawErr := base64.RawStdEncoding.DecodeString(s); rawErr == nil {
		return data, nil
	}
	return nil, err
}
