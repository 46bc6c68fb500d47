// Package config holds the gfaidx CLI settings, unmarshalled by viper from command
// line flags, GFAIDX_* environment variables and an optional gfaidx.yaml.
//
// Precedence, highest first: flags, environment, config file, defaults.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/arloliu/gfaidx/format"
	"github.com/arloliu/gfaidx/internal/output"
)

// EnvPrefix prefixes every environment variable, e.g. GFAIDX_INDEX_TYPE.
const EnvPrefix = "GFAIDX"

// Keys of the settings, in viper's dotted form. Flags bind to these.
const (
	KeyVerbose          = "verbose"
	KeyFormat           = "format"
	KeyIndexType        = "index.type"
	KeyIndexCompression = "index.compression"
	KeyIndexLenient     = "index.lenient"
	KeyIndexBigEndian   = "index.big-endian"
	KeyIndexConcurrency = "index.concurrency"
	KeyQueryStrict      = "query.strict-source"
	KeyQuerySkipStale   = "query.skip-stale-check"
)

// IndexConfig settings used when building index files.
type IndexConfig struct {
	// index type name, e.g. "full" or "segment+path"
	Type string `mapstructure:"type"`

	// body compression: none, zstd, s2 or lz4
	Compression string `mapstructure:"compression"`

	// record undefined path segments as warnings instead of failing
	Lenient bool `mapstructure:"lenient"`

	// write multi-byte fields big-endian
	BigEndian bool `mapstructure:"big-endian"`

	// number of sources indexed at once
	Concurrency int `mapstructure:"concurrency"`
}

// QueryConfig settings used when opening an index for queries.
type QueryConfig struct {
	// refuse to query when the source no longer matches the index
	StrictSource bool `mapstructure:"strict-source"`

	// do not fingerprint the source at open
	SkipStaleCheck bool `mapstructure:"skip-stale-check"`
}

// Config is the root-level settings struct.
type Config struct {
	Verbose bool        `mapstructure:"verbose"`
	Format  string      `mapstructure:"format"`
	Index   IndexConfig `mapstructure:"index"`
	Query   QueryConfig `mapstructure:"query"`
}

// SetDefaults registers every key with its default value. Unmarshal only sees
// environment variables for registered keys.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyFormat, string(output.FormatText))
	v.SetDefault(KeyIndexType, format.IndexFull.String())
	v.SetDefault(KeyIndexCompression, "none")
	v.SetDefault(KeyIndexLenient, false)
	v.SetDefault(KeyIndexBigEndian, false)
	v.SetDefault(KeyIndexConcurrency, runtime.GOMAXPROCS(0))
	v.SetDefault(KeyQueryStrict, false)
	v.SetDefault(KeyQuerySkipStale, false)
}

// NewViper returns a viper instance with defaults and environment lookup set up.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// ReadFile reads the config file. An explicit path must exist; without one,
// gfaidx.yaml is searched in the working directory and $HOME/.config/gfaidx, and a
// missing file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}

		return nil
	}

	v.SetConfigName("gfaidx")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/gfaidx")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("read config: %w", err)
	}

	return nil
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	if _, err := output.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := c.Index.IndexType(); err != nil {
		return err
	}
	if _, err := c.Index.CompressionType(); err != nil {
		return err
	}
	if c.Index.Concurrency < 0 {
		return fmt.Errorf("index concurrency must not be negative, got %d", c.Index.Concurrency)
	}

	return nil
}

// OutputFormat returns the parsed output format.
func (c *Config) OutputFormat() output.Format {
	f, err := output.ParseFormat(c.Format)
	if err != nil {
		return output.FormatText
	}

	return f
}

// IndexType returns the parsed index type.
func (c IndexConfig) IndexType() (format.IndexType, error) {
	return format.ParseIndexType(c.Type)
}

// CompressionType returns the parsed body compression.
func (c IndexConfig) CompressionType() (format.CompressionType, error) {
	return format.ParseCompressionType(c.Compression)
}
