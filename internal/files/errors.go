package files

import "errors"

var (
	ErrMissingName      = errors.New("files: missing name")
	ErrInvalidType      = errors.New("files: missing or invalid type")
	ErrMissingData      = errors.New("files: missing data")
	ErrInvalidData      = errors.New("files: invalid data")
	ErrParentNotFound   = errors.New("files: parent not found")
	ErrParentNotFolder  = errors.New("files: parent is not a folder")
	ErrNotFound         = errors.New("files: not found")
	ErrFolderHasNoData  = errors.New("files: a folder doesn't have content")
	ErrInvalidSize      = errors.New("files: invalid size")
	ErrUnknownMIME      = errors.New("files: unable to determine MIME type")
	ErrUpdateFailed     = errors.New("files: failed to update the file")
	ErrNotAnImage       = errors.New("files: file is not an image")
	ErrMissingJobFileID = errors.New("files: missing fileId")
	ErrMissingJobUserID = errors.New("files: missing userId")
)
