// Package config loads hdrnorm settings from defaults, an optional YAML
// file and HDRNORM_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"hdrnorm/internal/flatten"
	"hdrnorm/internal/keyword"
	"hdrnorm/internal/shorten"
)

// EnvPrefix prefixes every environment variable read by ParseEnv.
const EnvPrefix = "HDRNORM_"

// Config holds every pipeline and logging setting.
type Config struct {
	// Separator joins flattened keys.
	Separator string `yaml:"separator" env:"SEPARATOR"`

	// JoinSeparator joins the matched keys of a keyword sequence.
	JoinSeparator string `yaml:"join_separator" env:"JOIN_SEPARATOR"`

	Shorten ShortenConfig `yaml:"shorten" envPrefix:"SHORTEN_"`

	// Columns are projected from the header into the output table.
	Columns []ColumnConfig `yaml:"columns" env:"COLUMNS" envSeparator:","`

	// Epochs adds the epoch_ini and epoch_end columns.
	Epochs bool `yaml:"epochs" env:"EPOCHS"`

	// Catalog is the path of a YAML object catalog. When set, RA and DEC
	// are resolved from OBJECT before flattening.
	Catalog string `yaml:"catalog" env:"CATALOG"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// ShortenConfig controls key shortening.
type ShortenConfig struct {
	Enabled bool           `yaml:"enabled" env:"ENABLED"`
	Limit   int            `yaml:"limit" env:"LIMIT"`
	Vowels  string         `yaml:"vowels" env:"VOWELS"`
	Prefix  string         `yaml:"prefix" env:"PREFIX"`
	Policy  shorten.Policy `yaml:"policy" env:"POLICY"`
}

// ColumnConfig selects one header value to project.
type ColumnConfig struct {
	Keyword keyword.Spec `yaml:"keyword"`
	Unit    string       `yaml:"unit,omitempty"`
}

// ParseColumn reads the command-line form KEY[:UNIT], where KEY is a
// keyword or a "/"-separated keyword sequence: "OBJECT", "MJD/START:day".
func ParseColumn(s string) (ColumnConfig, error) {
	spec, unit := s, ""
	if i := strings.LastIndex(s, ":"); i >= 0 {
		spec, unit = s[:i], s[i+1:]
	}

	c := ColumnConfig{Keyword: keyword.Parse(spec), Unit: unit}

	if spec == "" {
		return c, fmt.Errorf("%w: column %q has no keyword", keyword.ErrInvalidSpec, s)
	}

	err := c.Keyword.Validate()
	if err != nil {
		return c, fmt.Errorf("column %q: %w", s, err)
	}

	return c, nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseColumn.
func (c *ColumnConfig) UnmarshalText(text []byte) error {
	parsed, err := ParseColumn(string(text))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// String returns the form accepted by ParseColumn.
func (c ColumnConfig) String() string {
	if c.Unit == "" {
		return c.Keyword.String()
	}

	return c.Keyword.String() + ":" + c.Unit
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Separator:     flatten.DefaultSeparator,
		JoinSeparator: keyword.DefaultJoinSeparator,
		Shorten: ShortenConfig{
			Limit:  shorten.DefaultLimit,
			Vowels: shorten.DefaultVowels,
			Prefix: shorten.DefaultPrefix,
			Policy: shorten.PolicyError,
		},
		LogLevel: "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path, if path is
// not empty, and then with the environment. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		err := LoadFile(path, &cfg)
		if err != nil {
			return cfg, err
		}
	}

	err := ParseEnv(&cfg)
	if err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current value.
func LoadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	err = dec.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// ParseEnv overlays HDRNORM_* environment variables onto cfg.
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Shorten.Limit < 1 {
		errs = append(errs, fmt.Errorf("shorten.limit must be positive, got %d", c.Shorten.Limit))
	}

	if c.Shorten.Prefix == "" {
		errs = append(errs, errors.New("shorten.prefix must not be empty"))
	}

	for i, col := range c.Columns {
		if err := col.Keyword.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("columns[%d]: %w", i, err))
		}
	}

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("log_level: %w", err)
	}

	return lvl, nil
}

// FlattenOptions returns the flatten options selected by c.
func (c Config) FlattenOptions() []flatten.Option {
	return []flatten.Option{flatten.WithSeparator(c.Separator)}
}

// ShortenOptions returns the shorten options selected by c.
func (c Config) ShortenOptions() []shorten.Option {
	return []shorten.Option{
		shorten.WithLimit(c.Shorten.Limit),
		shorten.WithVowels(c.Shorten.Vowels),
		shorten.WithPrefix(c.Shorten.Prefix),
		shorten.WithCollisionPolicy(c.Shorten.Policy),
	}
}
