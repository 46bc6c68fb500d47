package index

import (
	"log/slog"

	"github.com/arloliu/gfaidx/internal/options"
)

// BuildConfig holds the settings of one build.
type BuildConfig struct {
	lenient       bool
	skipMalformed bool
	logger        *slog.Logger
}

// BuildOption configures Build and BuildFiles.
type BuildOption = options.Option[*BuildConfig]

// WithLenientReferences makes path steps that name an undefined segment produce a
// zero-length position entry and a Warning instead of failing the build.
func WithLenientReferences() BuildOption {
	return options.NoError(func(c *BuildConfig) {
		c.lenient = true
	})
}

// WithStrictReferences restores the default: an undefined segment fails the build.
func WithStrictReferences() BuildOption {
	return options.NoError(func(c *BuildConfig) {
		c.lenient = false
	})
}

// WithSkipMalformed turns record parse errors into warnings; the offending line is
// left out of the index.
func WithSkipMalformed() BuildOption {
	return options.NoError(func(c *BuildConfig) {
		c.skipMalformed = true
	})
}

// WithLogger sets the logger used for progress and warning messages.
func WithLogger(logger *slog.Logger) BuildOption {
	return options.NoError(func(c *BuildConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

func newBuildConfig(opts []BuildOption) (*BuildConfig, error) {
	cfg := &BuildConfig{logger: slog.New(slog.DiscardHandler)}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
