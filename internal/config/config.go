// Package config loads shade's configuration from file, environment and
// defaults, in that order of increasing precedence for the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const appName = "shade"

// HandlerConfig enables one application target and anchors it to a root
// directory.
type HandlerConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Root    string `json:"root,omitempty" mapstructure:"root"`
}

// Config is the main configuration structure for the application.
type Config struct {
	// BackupDir is where snapshot backups live.
	BackupDir string `json:"backupDir" mapstructure:"backupDir"`

	// BackupRetention is how many backups survive pruning.
	BackupRetention int `json:"backupRetention" mapstructure:"backupRetention"`

	// ThemeDir holds user theme definitions.
	ThemeDir string `json:"themeDir" mapstructure:"themeDir"`

	// MaxHandlerFailures is how many handlers may fail before an apply is
	// rolled back.
	MaxHandlerFailures int `json:"maxHandlerFailures" mapstructure:"maxHandlerFailures"`

	// Handlers configures the application targets by handler name
	// (gtk, qt, tokens).
	Handlers map[string]HandlerConfig `json:"handlers,omitempty" mapstructure:"handlers"`

	// Debug enables verbose logging.
	Debug bool `json:"debug,omitempty" mapstructure:"debug"`

	// LogJSON switches log output from console to JSON lines.
	LogJSON bool `json:"logJSON,omitempty" mapstructure:"logJSON"`
}

// Load reads configuration from ~/.config/shade/shade.yaml (and the usual
// fallbacks), then the SHADE_* environment. A missing config file is fine.
func Load(workingDir string) (*Config, error) {
	configHome := configDir()

	viper.SetConfigName(appName)
	viper.SetConfigType("yaml")
	if workingDir != "" {
		viper.AddConfigPath(workingDir)
	}
	viper.AddConfigPath(filepath.Join(configHome, appName))
	viper.AddConfigPath("$HOME")
	viper.SetEnvPrefix(strings.ToUpper(appName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults(configHome)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.BackupRetention <= 0 {
		cfg.BackupRetention = 10
	}
	return cfg, nil
}

func setDefaults(configHome string) {
	dataDir := filepath.Join(configHome, appName)

	viper.SetDefault("backupDir", filepath.Join(dataDir, "backups"))
	viper.SetDefault("backupRetention", 10)
	viper.SetDefault("themeDir", filepath.Join(dataDir, "themes"))
	viper.SetDefault("maxHandlerFailures", 0)
	viper.SetDefault("debug", false)
	viper.SetDefault("logJSON", false)

	viper.SetDefault("handlers.gtk.enabled", true)
	viper.SetDefault("handlers.gtk.root", configHome)
	viper.SetDefault("handlers.qt.enabled", true)
	viper.SetDefault("handlers.qt.root", configHome)
	viper.SetDefault("handlers.tokens.enabled", false)
	viper.SetDefault("handlers.tokens.root", dataDir)
}

// configDir resolves XDG_CONFIG_HOME with the ~/.config fallback.
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}

// Handler returns the configuration for one handler, falling back to a
// disabled zero value.
func (c *Config) Handler(name string) HandlerConfig {
	if c.Handlers == nil {
		return HandlerConfig{}
	}
	return c.Handlers[name]
}
