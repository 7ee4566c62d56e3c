// Package config loads focusnav settings from defaults, a focusnav.yaml
// file, FOCUSNAV_* environment variables and command flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. FOCUSNAV_LOG_LEVEL.
	EnvPrefix = "focusnav"
	// FileName is the config file base name searched for without extension.
	FileName = "focusnav"
)

// Config holds every setting the commands read.
type Config struct {
	Scene string     `mapstructure:"scene"`
	Wrap  bool       `mapstructure:"wrap"`
	Log   LogConfig  `mapstructure:"log"`
	Otel  OtelConfig `mapstructure:"otel"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type OtelConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Service  string `mapstructure:"service"`
	Insecure bool   `mapstructure:"insecure"`
}

// Defaults returns the built-in values.
func Defaults() map[string]any {
	return map[string]any{
		"scene":         "",
		"wrap":          false,
		"log.level":     "info",
		"log.file":      "",
		"otel.endpoint": "",
		"otel.service":  "focusnav",
		"otel.insecure": true,
	}
}

// Load resolves the configuration for cmd. explicitPath, when non-empty,
// names a config file that must exist. Otherwise the user config dir and
// the working directory are searched and a missing file is not an error.
func Load(cmd *cobra.Command, explicitPath string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "focusnav"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitPath != "" || !errors.As(err, &notFound) {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, fmt.Errorf("bind flags: %w", err)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// SlogLevel maps Log.Level to a slog level. Unknown names are an error.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.Log.Level, err)
	}
	return lvl, nil
}
