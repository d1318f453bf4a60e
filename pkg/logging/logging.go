// Package logging builds the structured loggers used by the snailz drivers.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// Config holds configuration for creating loggers
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // text, json or logfmt (default: text)
	Prefix string    // component name shown on every line
	Output io.Writer // default: os.Stderr
}

// DefaultConfig returns a default configuration
func DefaultConfig(prefix string) Config {
	return Config{
		Level:  "info",
		Format: FormatText,
		Prefix: prefix,
	}
}

// New creates a logger from cfg. An unknown level or format is an error.
func New(cfg Config) (*log.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	return log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
		ReportTimestamp: formatter != log.TextFormatter,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel accepts the level names used in config files. An empty string
// means info.
func ParseLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return 0, fmt.Errorf("logging: invalid level %q", s)
	}
	return level, nil
}

func parseFormat(s string) (log.Formatter, error) {
	switch strings.ToLower(s) {
	case "", FormatText:
		return log.TextFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	case FormatLogfmt:
		return log.LogfmtFormatter, nil
	default:
		return 0, fmt.Errorf("logging: invalid format %q", s)
	}
}
