// Package config loads eeroctl settings from an optional YAML file and
// EEROCTL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all tool-wide configuration. The user token is never part of
// it; that lives in the session file.
type Config struct {
	PreferredNetworkID string        `yaml:"preferred_network_id" mapstructure:"preferred_network_id"`
	DefaultOutput      string        `yaml:"default_output"       mapstructure:"default_output"`
	APIURL             string        `yaml:"api_url"              mapstructure:"api_url"`
	Timeout            time.Duration `yaml:"timeout"              mapstructure:"timeout"`
	RateLimit          float64       `yaml:"rate_limit"           mapstructure:"rate_limit"`
	SessionFile        string        `yaml:"session_file"         mapstructure:"session_file"`

	// path is the file the config was read from or will be written to.
	path string
}

// Dir returns the eeroctl config directory, ~/.config/eeroctl on Linux.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(base, "eeroctl"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultFileName), nil
}

func newViper() (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("default_output", DefaultOutput)
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("rate_limit", DefaultRateLimit)
	v.SetDefault("preferred_network_id", "")
	v.SetDefault("session_file", "")

	// EEROCTL_API_URL -> api_url and so on.
	v.SetEnvPrefix("EEROCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	envBindings := map[string]string{
		"preferred_network_id": "EEROCTL_NETWORK_ID",
		"default_output":       "EEROCTL_OUTPUT",
		"api_url":              "EEROCTL_API_URL",
		"timeout":              "EEROCTL_TIMEOUT",
		"rate_limit":           "EEROCTL_RATE_LIMIT",
		"session_file":         "EEROCTL_SESSION_FILE",
	}
	for key, envVar := range envBindings {
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", envVar, err)
		}
	}
	return v, nil
}

// Load reads configuration from cfgFile and the environment. An empty
// cfgFile means the default path; a missing file at the default path is not
// an error, an explicitly named one is.
func Load(cfgFile string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	explicit := cfgFile != ""
	if !explicit {
		if cfgFile, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	v.SetConfigFile(cfgFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if explicit || !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.path = cfgFile
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns the file backing this config.
func (c *Config) Path() string { return c.path }

// Validate checks that the configuration is semantically correct.
func (c *Config) Validate() error {
	if !validOutputs[c.DefaultOutput] {
		return fmt.Errorf(
			"invalid default_output %q: must be one of table, list, json, yaml, text",
			c.DefaultOutput,
		)
	}
	// A bare integer decodes as nanoseconds, so "timeout: 30" lands here.
	if c.Timeout < time.Second {
		return fmt.Errorf("invalid timeout %s: must be at least 1s, use a duration such as \"30s\"", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid rate_limit %g: must not be negative", c.RateLimit)
	}
	return nil
}

// SetPreferredNetwork records networkID as the default network and writes
// the file-backed settings back to disk. Environment overrides are not
// persisted.
func (c *Config) SetPreferredNetwork(networkID string) error {
	if c.path == "" {
		return errors.New("config has no backing file")
	}
	v := viper.New()
	v.SetConfigFile(c.path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	v.Set("preferred_network_id", networkID)
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("write config %s: %w", c.path, err)
	}
	c.PreferredNetworkID = networkID
	return nil
}
