package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

// Load reads configuration from the given file path (e.g. "config.yaml").
// If path is empty it looks for config.yaml in the working directory; a
// missing file is fine, defaults and LIBCTL_* environment overrides apply
// either way.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "https://library-backend-km6k.onrender.com/library-api")
	v.SetDefault("session.path", "libraryctl.db")
	v.SetDefault("log.level", "info")

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. LIBCTL_API_BASE_URL
	v.SetEnvPrefix("LIBCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
