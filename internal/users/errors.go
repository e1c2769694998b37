package users

import "errors"

var (
	ErrMissingEmail    = errors.New("users: missing email")
	ErrMissingPassword = errors.New("users: missing password")
	ErrAlreadyExists   = errors.New("users: already exists")
	ErrNotFound        = errors.New("users: not found")
	ErrMissingUserID   = errors.New("users: missing user id")
)
