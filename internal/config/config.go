// Package config loads dock-cli settings from a YAML file with environment
// overrides and watches the file for changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment override, e.g. DOCK_BADGE_REFRESH.
	EnvPrefix = "DOCK"
	// PathEnv overrides the config file location.
	PathEnv = "DOCK_CONFIG"
	// DefaultDomain is the macOS dock preferences domain.
	DefaultDomain = "com.apple.dock"
)

// Config holds all dock-cli configuration.
type Config struct {
	// Domain is the preferences domain holding the persistent-apps list.
	Domain string `yaml:"domain" json:"domain" envconfig:"DOMAIN"`
	// BadgeRefresh is the periodic badge refresh interval; "never" disables it.
	BadgeRefresh Duration `yaml:"badge_refresh" json:"badge_refresh" envconfig:"BADGE_REFRESH"`
	// PollInterval is how often the process list is sampled for lifecycle events.
	PollInterval Duration `yaml:"poll_interval" json:"poll_interval" envconfig:"POLL_INTERVAL"`
	// IncludeOthers also merges the persistent-others list (folders and files).
	IncludeOthers bool `yaml:"include_others" json:"include_others" envconfig:"INCLUDE_OTHERS"`
	// CollapseNotifications sends one DidUpdate per reload instead of two.
	CollapseNotifications bool `yaml:"collapse_notifications" json:"collapse_notifications" envconfig:"COLLAPSE_NOTIFICATIONS"`

	Logging LoggingConfig `yaml:"logging" json:"logging" envconfig:"LOG"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"  json:"level"  envconfig:"LEVEL"`
	Format string `yaml:"format" json:"format" envconfig:"FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Domain:       DefaultDomain,
		BadgeRefresh: Duration(10 * time.Second),
		PollInterval: Duration(time.Second),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the config file location: $DOCK_CONFIG, else
// $XDG_CONFIG_HOME/dock-cli/config.yaml, else ~/.config/dock-cli/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "dock-cli", "config.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "dock-cli", "config.yaml")
}

// Load reads path on top of Default and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration or returns Default on any error.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Domain) == "" {
		return fmt.Errorf("invalid config: domain must not be empty")
	}
	if c.BadgeRefresh < 0 {
		return fmt.Errorf("invalid config: badge_refresh must not be negative")
	}
	if c.PollInterval.Duration() < 100*time.Millisecond {
		return fmt.Errorf("invalid config: poll_interval must be at least 100ms, got %s", c.PollInterval)
	}
	return nil
}

// Duration is a time.Duration that decodes from strings like "30s".
// "never", "off" and "0" decode to zero.
type Duration time.Duration

// ParseDuration parses a duration string.
func ParseDuration(s string) (Duration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "never", "off", "0", "":
		return 0, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return Duration(d), nil
}

// Duration returns the value as a time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

func (d Duration) String() string {
	if d == 0 {
		return "never"
	}
	return time.Duration(d).String()
}

// Decode implements envconfig.Decoder.
func (d *Duration) Decode(value string) error {
	parsed, err := ParseDuration(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.Decode(s)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// MarshalText lets JSON printers show the human form.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
