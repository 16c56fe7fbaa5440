package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all jsonview configuration.
type Config struct {
	// Widget settings
	Viewer ViewerConfig `yaml:"viewer"`

	// Live reload of the displayed file
	Watch WatchConfig `yaml:"watch"`

	// Key bindings of the interactive viewer
	Keys KeyConfig `yaml:"keys"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// WatchConfig configures reloading the displayed file when it changes.
type WatchConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Debounce string `yaml:"debounce"` // quiet period before a reload, e.g. "200ms"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Viewer: DefaultViewerConfig(),
		Watch: WatchConfig{
			Enabled:  false,
			Debounce: "200ms",
		},
		Keys: DefaultKeyConfig(),
		UI:   *DefaultUIConfig(),
		Logging: LoggingConfig{
			Level:     "info",
			File:      "",
			DebugMode: false,
		},
	}
}

// DefaultPath returns the location of the user configuration file.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".jsonview", "config.yaml")
	}
	return filepath.Join(dir, "jsonview", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks that values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Viewer.Indentation < 0 {
		return fmt.Errorf("viewer.indentation must be >= 0")
	}
	if c.Viewer.InitialItems < 0 {
		return fmt.Errorf("viewer.initial_items must be >= 0")
	}
	if _, err := c.Viewer.Styles.Modifiers(); err != nil {
		return err
	}
	if c.Watch.Debounce != "" {
		if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
			return fmt.Errorf("watch.debounce: %w", err)
		}
	}
	switch c.UI.Theme {
	case "", ThemeAuto, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("ui.theme must be auto, light or dark, got %q", c.UI.Theme)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("JSONVIEW_DARK_MODE"); v != "" {
		if v == "1" || v == "true" {
			c.UI.Theme = ThemeDark
		} else {
			c.UI.Theme = ThemeLight
		}
	}
	if v := os.Getenv("JSONVIEW_INDENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Viewer.Indentation = n
		}
	}
	if v := os.Getenv("JSONVIEW_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("JSONVIEW_DEBUG"); v == "1" || v == "true" {
		c.Logging.DebugMode = true
	}
}

// GetDebounce returns the watch debounce as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 200 * time.Millisecond
	}
	return d
}
