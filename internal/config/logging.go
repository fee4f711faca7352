package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rshade/tablestate/internal/logging"
)

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"            env:"TABLESTATE_LOG_LEVEL"`
	Format string `yaml:"format"           env:"TABLESTATE_LOG_FORMAT"`
	File   string `yaml:"file"             env:"TABLESTATE_LOG_FILE"`
	Caller bool   `yaml:"caller,omitempty" env:"TABLESTATE_LOG_CALLER"`
}

// ToLoggingConfig converts LoggingConfig to logging.Config.
//
// The conversion applies these rules:
//   - Level, Format, and Caller are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
		Caller: lc.Caller,
	}
}

// EnsureLogDir creates the parent directory of the configured log file.
// It is a no-op when logging to stderr.
func (lc *LoggingConfig) EnsureLogDir() error {
	if lc.File == "" {
		return nil
	}
	dir := filepath.Dir(lc.File)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating log directory %s: %w", dir, err)
	}
	return nil
}
