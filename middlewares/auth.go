package middlewares

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/pkg/logger"
)

// TokenHeader carries the session token.
const TokenHeader = "X-Token"

// MessageUnauthorized is rendered for missing, unknown or expired tokens.
const MessageUnauthorized = "Unauthorized"

// TokenResolver maps a session token to a user id.
// ok is false when the token is unknown or expired.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (userID string, ok bool, err error)
}

type (
	userIDKey struct{}
	tokenKey  struct{}
)

type authConfig struct {
	extractor internal.Extractor
}

// AuthOption configures Auth and OptionalAuth.
type AuthOption func(*authConfig)

// WithTokenExtractor replaces the default token sources (X-Token header, then Bearer).
func WithTokenExtractor(ext internal.Extractor) AuthOption {
	return func(cfg *authConfig) {
		cfg.extractor = ext
	}
}

func newAuthConfig(opts []AuthOption) *authConfig {
	cfg := &authConfig{
		extractor: internal.NewExtractor(
			internal.FromHeader(TokenHeader),
			internal.FromBearerToken(),
		),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Auth resolves the request token on every request and rejects the request
// with 401 when it is missing or unknown.
func Auth(resolver TokenResolver, opts ...AuthOption) internal.Middleware {
	cfg := newAuthConfig(opts)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			token, ok := cfg.extractor.Extract(c)
			if !ok {
				return internal.ErrUnauthorized(MessageUnauthorized)
			}

			userID, ok, err := resolver.Resolve(c, token)
			if err != nil {
				return fmt.Errorf("resolve token: %w", err)
			}
			if !ok {
				return internal.ErrUnauthorized(MessageUnauthorized)
			}

			c.Set(userIDKey{}, userID)
			c.Set(tokenKey{}, token)
			return next(c)
		}
	}
}

// OptionalAuth resolves the token when present. Missing or unknown tokens
// leave the request anonymous instead of failing it, and so does a token
// store error, which is logged.
func OptionalAuth(resolver TokenResolver, opts ...AuthOption) internal.Middleware {
	cfg := newAuthConfig(opts)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			token, ok := cfg.extractor.Extract(c)
			if !ok {
				return next(c)
			}

			userID, ok, err := resolver.Resolve(c, token)
			if err != nil {
				// A store error degrades to an anonymous request.
				c.Logger().WarnContext(c, "token resolution failed, continuing anonymously",
					slog.Any("error", err))
				return next(c)
			}
			if ok {
				c.Set(userIDKey{}, userID)
				c.Set(tokenKey{}, token)
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c internal.Context) string {
	v, _ := c.Get(userIDKey{}).(string)
	return v
}

// Token returns the resolved session token, or "".
func Token(c internal.Context) string {
	v, _ := c.Get(tokenKey{}).(string)
	return v
}

// UserIDExtractor adds "user_id" to log records of authenticated requests.
func UserIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(userIDKey{}).(string); ok && v != "" {
			return slog.String("user_id", v), true
		}
		return slog.Attr{}, false
	}
}
