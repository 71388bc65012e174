// Package config holds the CLI tool configuration, loaded from
// wesign-e2e.yaml and WESIGN_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the wesign-e2e tool configuration.
type Config struct {
	BaseURL      string `mapstructure:"base_url" validate:"required,url"`
	SchedulerURL string `mapstructure:"scheduler_url" validate:"omitempty,url"`
	FixtureDir   string `mapstructure:"fixture_dir" validate:"required"`
	Browser      string `mapstructure:"browser" validate:"oneof=chromium firefox webkit"`
	Logging      Logger `mapstructure:"logging"`
}

// Logger configures the zap console logger.
type Logger struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// Load reads configuration from cfgFile (or ./wesign-e2e.yaml) plus env.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("wesign-e2e")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("WESIGN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("fixture_dir", "./test-fixtures")
	v.SetDefault("browser", "chromium")
	v.SetDefault("logging.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file is fine; env and defaults carry the tool.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
