package pagination

const (
	defaultLimit    = 100
	defaultMaxLimit = 500
)

// Options configures pagination behavior.
type Options struct {
	DefaultLimit int
	MaxLimit     int
}

type Option func(*Options)

func WithDefaultLimit(limit int) Option {
	return func(o *Options) {
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(maxLimit int) Option {
	return func(o *Options) {
		o.MaxLimit = maxLimit
	}
}

func defaultOptions() Options {
	return Options{
		DefaultLimit: defaultLimit,
		MaxLimit:     defaultMaxLimit,
	}
}
