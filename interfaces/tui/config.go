package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const DefaultServerURL = "http://localhost:8001"

// Config is the terminal client's settings file.
type Config struct {
	ServerURL string `mapstructure:"server_url" yaml:"server_url"`
	Email     string `mapstructure:"email" yaml:"email"`
	Theme     string `mapstructure:"theme" yaml:"theme"`
}

// DefaultConfigPath returns ~/.config/taskmaster/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "taskmaster", "config.yaml")
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TASKMASTER")
	v.AutomaticEnv()

	v.SetDefault("server_url", DefaultServerURL)
	v.SetDefault("email", "")
	v.SetDefault("theme", "tokyonight")
	return v
}

// LoadConfig reads path, falling back to defaults when the file is missing.
// TASKMASTER_SERVER_URL, TASKMASTER_EMAIL and TASKMASTER_THEME override the file.
func LoadConfig(path string) (*Config, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path, creating parent directories if needed.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.Set("server_url", cfg.ServerURL)
	v.Set("email", cfg.Email)
	v.Set("theme", cfg.Theme)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
