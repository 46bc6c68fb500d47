package index

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/format"
	"github.com/arloliu/gfaidx/internal/options"
)

// EncodeConfig holds the on-disk settings used by Encode and Save.
type EncodeConfig struct {
	compression format.CompressionType
	bigEndian   bool
	logger      *slog.Logger
}

// EncodeOption configures Encode and Save.
type EncodeOption = options.Option[*EncodeConfig]

// WithCompression sets the body compression. The default is format.CompressionNone.
func WithCompression(ct format.CompressionType) EncodeOption {
	return options.New(func(c *EncodeConfig) error {
		if !ct.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, uint8(ct))
		}
		c.compression = ct

		return nil
	})
}

// WithBigEndian writes the index in big-endian byte order.
func WithBigEndian() EncodeOption {
	return options.NoError(func(c *EncodeConfig) {
		c.bigEndian = true
	})
}

// WithLittleEndian writes the index in little-endian byte order, the default.
func WithLittleEndian() EncodeOption {
	return options.NoError(func(c *EncodeConfig) {
		c.bigEndian = false
	})
}

// WithEncodeLogger sets the logger used by Save.
func WithEncodeLogger(logger *slog.Logger) EncodeOption {
	return options.NoError(func(c *EncodeConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

func newEncodeConfig(opts []EncodeOption) (*EncodeConfig, error) {
	cfg := &EncodeConfig{
		compression: format.CompressionNone,
		logger:      slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
