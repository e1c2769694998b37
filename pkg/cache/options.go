package cache

import "time"

// Option configures a cache backend.
type Option func(*options)

type options struct {
	prefix          string
	defaultTTL      time.Duration
	cleanupInterval time.Duration
}

func defaultOptions() *options {
	return &options{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
}

// WithDefaultTTL sets the expiration used when Set is called with a zero TTL.
// Default: 1 hour.
func WithDefaultTTL(d time.Duration) Option {
	return func(o *options) {
		o.defaultTTL = d
	}
}

// WithCleanupInterval sets how often Memory sweeps expired entries.
// Zero disables the sweeper; expired entries are then dropped on access.
// Ignored by Redis.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) {
		o.cleanupInterval = d
	}
}

// WithPrefix namespaces keys for Redis as "{prefix}{key}". Include the
// separator in prefix when one is wanted. Ignored by Memory.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}
