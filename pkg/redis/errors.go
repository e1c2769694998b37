package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned by Open when neither REDIS_URL nor a host is configured.
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")
	ErrFailedToParseURL   = errors.New("redis: failed to parse connection URL")
	// ErrConnectionFailed wraps the last ping error after all retries.
	ErrConnectionFailed = errors.New("redis: failed to establish connection")

	// ErrHealthcheckFailed is returned by the Healthcheck probe, joined with the cause.
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
	ErrNilClient         = errors.New("redis: client is nil")
)
