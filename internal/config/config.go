// Package config provides configuration loading for the nativ CLI.
//
// Values are resolved in order: command-line flags, NATIV_* environment
// variables (optionally from a .env file), the config file
// (~/.nativ/config.yaml by default), then built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/usenativ/nativ-go/pkg/api"
)

// Config holds the CLI configuration.
type Config struct {
	// APIKey authenticates API calls.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// BaseURL is the API root.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Timeout bounds each request.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		APIKey:  "",
		BaseURL: api.DefaultBaseURL,
		Timeout: 120 * time.Second,
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Dir returns the default configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".nativ"), nil
}

// LoadEnvFile loads a .env file into the process environment without
// overriding variables that are already set. A missing default file is
// not an error; a missing explicit file is.
func LoadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from file and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Environment variables
	v.SetEnvPrefix("NATIV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// NATIV_API_URL is the name shared with the library.
	if err := v.BindEnv("base_url", api.EnvAPIURL); err != nil {
		return nil, fmt.Errorf("error binding env: %w", err)
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Config file is optional
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	// Unmarshal
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Redacted returns a copy safe to print, with the API key masked.
func (c Config) Redacted() Config {
	c.APIKey = MaskKey(c.APIKey)
	return c
}

// MaskKey keeps the first four characters of key.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url"`
		Timeout string        `yaml:"timeout"`
		Logging LoggingConfig `yaml:"logging"`
	}{
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
		Timeout: c.Timeout.String(),
		Logging: c.Logging,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return out, nil
}

// WriteFile writes c as YAML to path, creating parent directories. The
// file is readable by the owner only since it may hold the API key.
// Existing files are not overwritten unless force is set.
func (c Config) WriteFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
