package auth

import "errors"

var (
	ErrEmptyUserID = errors.New("auth: empty user id")
	ErrTokenStore  = errors.New("auth: token store failure")
)
