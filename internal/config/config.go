// Package config loads dir-diff configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Command-line flags (applied by the caller)
//  2. Environment variables (DIR_DIFF_*)
//  3. Config file
//  4. Built-in defaults
//
// Config file search order:
//  1. .dir-diff.yaml in current directory
//  2. ~/.config/dir-diff/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all dir-diff configuration.
type Config struct {
	// Display
	Theme      string `yaml:"theme"`       // dark, light
	Sort       *bool  `yaml:"sort"`        // sort listings and diffs for display
	ShowHidden *bool  `yaml:"show_hidden"` // show dot-entries in listings

	// StatusTimeout is a Go duration string; "0"/"off" keeps status messages
	// until replaced.
	StatusTimeout string `yaml:"status_timeout"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// ControlSocket is the unix datagram socket the UI listens on for reload
	// commands. Empty means the default path; "off" disables it.
	ControlSocket string `yaml:"control_socket"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs

	// Parsed durations (not from YAML, set after loading)
	StatusTimeoutDuration time.Duration `yaml:"-"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Theme:         "dark",
		Sort:          boolPtr(true),
		ShowHidden:    boolPtr(true),
		StatusTimeout: "5s",
		LogLevel:      "info",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	if err := mergeEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finalize validates enum fields and parses durations.
func (c *Config) finalize() error {
	switch c.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("invalid theme %q (supported: dark, light)", c.Theme)
	}

	var err error
	c.StatusTimeoutDuration, err = parseDurationOrDisable(c.StatusTimeout, 5*time.Second)
	if err != nil {
		return fmt.Errorf("invalid status timeout %q: %w", c.StatusTimeout, err)
	}
	return nil
}

// SortEnabled reports whether listings are sorted for display.
func (c *Config) SortEnabled() bool {
	return c.Sort == nil || *c.Sort
}

// ShowHiddenEnabled reports whether dot-entries are listed.
func (c *Config) ShowHiddenEnabled() bool {
	return c.ShowHidden == nil || *c.ShowHidden
}

// ControlSocketDisabled reports whether the control socket is turned off.
func (c *Config) ControlSocketDisabled() bool {
	return c.ControlSocket == "off" || c.ControlSocket == "disable"
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	if data, err := os.ReadFile(".dir-diff.yaml"); err == nil {
		return ".dir-diff.yaml", data, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "dir-diff", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies set file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Theme != "" {
		cfg.Theme = file.Theme
	}
	if file.Sort != nil {
		cfg.Sort = file.Sort
	}
	if file.ShowHidden != nil {
		cfg.ShowHidden = file.ShowHidden
	}
	if file.StatusTimeout != "" {
		cfg.StatusTimeout = file.StatusTimeout
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}
	if file.ControlSocket != "" {
		cfg.ControlSocket = file.ControlSocket
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) error {
	if v := os.Getenv("DIR_DIFF_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("DIR_DIFF_SORT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DIR_DIFF_SORT %q: %w", v, err)
		}
		cfg.Sort = &b
	}
	if v := os.Getenv("DIR_DIFF_SHOW_HIDDEN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DIR_DIFF_SHOW_HIDDEN %q: %w", v, err)
		}
		cfg.ShowHidden = &b
	}
	if v := os.Getenv("DIR_DIFF_STATUS_TIMEOUT"); v != "" {
		cfg.StatusTimeout = v
	}
	if v := os.Getenv("DIR_DIFF_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DIR_DIFF_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("DIR_DIFF_CONTROL_SOCKET"); v != "" {
		cfg.ControlSocket = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
	return nil
}

// parseDurationOrDisable parses a duration string. "0", "off", "disable" return 0.
// Empty string returns the fallback value.
func parseDurationOrDisable(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	if s == "0" || s == "off" || s == "disable" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func boolPtr(b bool) *bool {
	return &b
}
