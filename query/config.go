package query

import (
	"log/slog"

	"github.com/arloliu/gfaidx/internal/options"
)

// Config holds Engine settings.
type Config struct {
	logger      *slog.Logger
	skipStale   bool
	requireSync bool
}

// Option configures Open and New.
type Option = options.Option[*Config]

// WithLogger sets the logger the engine reports stale sources on.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithoutStaleCheck skips fingerprinting the source in Open.
func WithoutStaleCheck() Option {
	return options.NoError(func(c *Config) {
		c.skipStale = true
	})
}

// WithStrictSource makes Open fail with errs.ErrStaleIndex instead of only recording
// it for Stale.
func WithStrictSource() Option {
	return options.NoError(func(c *Config) {
		c.requireSync = true
	})
}

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{logger: slog.New(slog.DiscardHandler)}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
