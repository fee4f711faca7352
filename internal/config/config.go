package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/caarlos0/env/v11"

	"github.com/rshade/tablestate/internal/logging"
	"github.com/rshade/tablestate/internal/pagination"
)

// Schema version written by this release and the range it can read.
const (
	CurrentVersion    = "1.0.0"
	SupportedVersions = "^1"
)

// Output formats for rendered pages.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

const (
	configDirName  = ".tablestate"
	configFileName = "config.yaml"
)

// Validation errors.
var (
	ErrUnsupportedConfigVersion = errors.New("unsupported config version")
	ErrInvalidOutputFormat      = errors.New("output format must be one of table, json, yaml")
	ErrInvalidLogFormat         = errors.New("log format must be one of json, console, text")
	ErrInvalidTableConfig       = errors.New("invalid table config")
)

// Config is the tablestate configuration file.
type Config struct {
	Version string        `yaml:"version"`
	Table   TableConfig   `yaml:"table"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// TableConfig holds pagination defaults.
type TableConfig struct {
	PageSize        int `yaml:"page_size"         env:"TABLESTATE_PAGE_SIZE"`
	MaxVisiblePages int `yaml:"max_visible_pages" env:"TABLESTATE_MAX_VISIBLE_PAGES"`
}

// OutputConfig holds rendering defaults.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" env:"TABLESTATE_OUTPUT_FORMAT"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Version: CurrentVersion,
		Table: TableConfig{
			PageSize:        pagination.DefaultPageSize,
			MaxVisiblePages: pagination.DefaultMaxVisiblePages,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
		},
	}
}

// DefaultPath returns $TABLESTATE_HOME/config.yaml, falling back to
// ~/.tablestate/config.yaml. Returns "" when no home directory is known.
func DefaultPath() string {
	if home := os.Getenv("TABLESTATE_HOME"); home != "" {
		return filepath.Join(home, configFileName)
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(userHome, configDirName, configFileName)
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (if it exists), then TABLESTATE_* environment variables. A missing
// file falls back to defaults; any other stat error is returned.
func Load(ctx context.Context, path string) (*Config, error) {
	return load(ctx, path, false)
}

// LoadRequired is Load for a path the user named explicitly: the file must
// exist.
func LoadRequired(ctx context.Context, path string) (*Config, error) {
	return load(ctx, path, true)
}

func load(ctx context.Context, path string, required bool) (*Config, error) {
	cfg := New()

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err = ShallowMergeYAML(cfg, path); err != nil {
				return nil, err
			}
		case required || !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("config file %s: %w", path, err)
		default:
			logger := logging.FromContext(ctx)
			logger.Debug().
				Str("component", "config").
				Str("path", path).
				Msg("config file not found, using defaults")
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from TABLESTATE_* environment variables.
// Unset variables leave the current values untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the schema version and value ranges.
func (c *Config) Validate() error {
	if err := checkVersion(c.Version); err != nil {
		return err
	}

	if c.Table.PageSize < pagination.MinPageSize || c.Table.PageSize > pagination.MaxPageSize {
		return fmt.Errorf("%w: page_size must be between %d and %d, got %d",
			ErrInvalidTableConfig, pagination.MinPageSize, pagination.MaxPageSize, c.Table.PageSize)
	}
	if c.Table.MaxVisiblePages < 1 || c.Table.MaxVisiblePages > pagination.MaxVisiblePagesCap {
		return fmt.Errorf("%w: max_visible_pages must be between 1 and %d, got %d",
			ErrInvalidTableConfig, pagination.MaxVisiblePagesCap, c.Table.MaxVisiblePages)
	}

	if !slices.Contains([]string{FormatTable, FormatJSON, FormatYAML}, c.Output.DefaultFormat) {
		return fmt.Errorf("%w: got %q", ErrInvalidOutputFormat, c.Output.DefaultFormat)
	}
	switch c.Logging.Format {
	case "", logging.FormatJSON, logging.FormatConsole, logging.FormatText:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	return nil
}

// checkVersion accepts an empty version as the current one.
func checkVersion(raw string) error {
	if raw == "" {
		return nil
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid semantic version: %w", ErrUnsupportedConfigVersion, raw, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedConfigVersion, v, SupportedVersions)
	}
	return nil
}
