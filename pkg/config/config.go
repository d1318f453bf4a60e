// Package config loads snailz settings from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/agenthands/snailz/pkg/logging"
	"github.com/agenthands/snailz/pkg/stdlib"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "SNAILZ_CONFIG"

// Config holds the complete application configuration
type Config struct {
	REPL   REPLConfig   `toml:"repl" yaml:"repl"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Eval   EvalConfig   `toml:"eval" yaml:"eval"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// REPLConfig holds interactive front end settings
type REPLConfig struct {
	Prompt string `toml:"prompt" yaml:"prompt"`
	Color  bool   `toml:"color" yaml:"color"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// EvalConfig holds evaluator settings
type EvalConfig struct {
	Sort string `toml:"sort" yaml:"sort"` // shuffle or deterministic
	Seed uint64 `toml:"seed" yaml:"seed"` // 0 picks a random seed
}

// ServerConfig holds websocket server settings
type ServerConfig struct {
	Addr        string   `toml:"addr" yaml:"addr"`
	ReadTimeout Duration `toml:"read_timeout" yaml:"read_timeout"`
}

// Duration wraps time.Duration for config parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{REPL: REPLConfig{Color: true}}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, picked by extension.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Config{REPL: REPLConfig{Color: true}}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by SNAILZ_CONFIG, or the first default
// location that exists. With no file at all it returns Default().
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range defaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

func defaultPaths() []string {
	paths := []string{"./snailz.toml", "./snailz.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config/snailz/config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "snailz > "
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = logging.FormatText
	}
	if c.Eval.Sort == "" {
		c.Eval.Sort = stdlib.SortShuffle
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 120 * time.Second
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON, logging.FormatLogfmt:
	default:
		return fmt.Errorf("config: log.format must be text, json or logfmt, got %q", c.Log.Format)
	}
	switch c.Eval.Sort {
	case stdlib.SortShuffle, stdlib.SortDeterministic:
	default:
		return fmt.Errorf("config: eval.sort must be %q or %q, got %q", stdlib.SortShuffle, stdlib.SortDeterministic, c.Eval.Sort)
	}
	if c.Server.ReadTimeout.Duration < 0 {
		return fmt.Errorf("config: server.read_timeout must not be negative")
	}
	return nil
}

// LoggerConfig returns the logging settings for a component.
func (c *Config) LoggerConfig(prefix string) logging.Config {
	cfg := logging.DefaultConfig(prefix)
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	return cfg
}

// Sorter builds the sort strategy named by eval.sort.
func (c *Config) Sorter() (stdlib.Sorter, error) {
	return stdlib.NewSorter(c.Eval.Sort, c.Eval.Seed)
}
