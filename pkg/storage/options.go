package storage

// Option configures Put operations.
type Option func(*putOptions)

type putOptions struct {
	key         string // explicit key, replaces the generated one
	prefix      string
	contentType string
}

// WithKey stores the object under an explicit key, overwriting any existing
// object there.
func WithKey(key string) Option {
	return func(o *putOptions) {
		o.key = key
	}
}

// WithPrefix places generated keys under prefix. Ignored when WithKey is set.
func WithPrefix(prefix string) Option {
	return func(o *putOptions) {
		o.prefix = prefix
	}
}

// WithContentType overrides content type detection.
func WithContentType(ct string) Option {
	return func(o *putOptions) {
		o.contentType = ct
	}
}

func applyOptions(opts []Option) *putOptions {
	o := &putOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
