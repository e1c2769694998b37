// Package auth issues and resolves opaque session tokens.
//
// A token maps to a user id under the key "auth_<token>" in a cache.Cache,
// Redis in production, memory in development and tests. Expiry is owned by
// the store; a token that has expired simply resolves to nothing.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/filevault/pkg/cache"
)

const (
	// KeyPrefix namespaces token entries in the store.
	KeyPrefix = "auth_"

	// DefaultTTL is how long an issued token stays valid.
	DefaultTTL = 24 * time.Hour
)

// Tokens is the token store. It implements middlewares.TokenResolver.
type Tokens struct {
	store    cache.Cache[string]
	ttl      time.Duration
	generate func() string
}

// Option configures Tokens.
type Option func(*Tokens)

// WithTTL sets the lifetime of issued tokens.
func WithTTL(ttl time.Duration) Option {
	return func(t *Tokens) {
		if ttl > 0 {
			t.ttl = ttl
		}
	}
}

// WithGenerator replaces the UUID token generator.
func WithGenerator(fn func() string) Option {
	return func(t *Tokens) {
		if fn != nil {
			t.generate = fn
		}
	}
}

// NewTokens creates a token store over store.
func NewTokens(store cache.Cache[string], opts ...Option) *Tokens {
	t := &Tokens{
		store:    store,
		ttl:      DefaultTTL,
		generate: uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Resolve returns the user id bound to token. ok is false for unknown or
// expired tokens.
func (t *Tokens) Resolve(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}

	userID, err := t.store.Get(ctx, KeyPrefix+token)
	if errors.Is(err, cache.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Join(ErrTokenStore, err)
	}
	return userID, userID != "", nil
}

// Issue creates a new token for userID.
func (t *Tokens) Issue(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrEmptyUserID
	}

	token := t.generate()
	if err := t.store.Set(ctx, KeyPrefix+token, userID, t.ttl); err != nil {
		return "", errors.Join(ErrTokenStore, err)
	}
	return token, nil
}

// Revoke deletes token. Revoking an unknown token is not an error.
func (t *Tokens) Revoke(ctx context.Context, token string) error {
	if err := t.store.Delete(ctx, KeyPrefix+token); err != nil && !errors.Is(err, cache.ErrNotFound) {
		return errors.Join(ErrTokenStore, err)
	}
	return nil
}
