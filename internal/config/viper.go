// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Extract struct {
		// PledgeEqualsPayment copies the parsed payment amount into the
		// pledge amount column when true.
		PledgeEqualsPayment bool `mapstructure:"pledge_equals_payment" yaml:"pledge_equals_payment"`
		// DefaultPercentage is the DESPERCENTAGE value stamped on every record.
		DefaultPercentage int `mapstructure:"default_percentage" yaml:"default_percentage"`
		// DefaultBookLabel is injected when no GN label is detected on a line.
		DefaultBookLabel string `mapstructure:"default_book_label" yaml:"default_book_label"`
	} `mapstructure:"extract" yaml:"extract"`

	Output struct {
		SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`
	} `mapstructure:"output" yaml:"output"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then PLEDGE_-prefixed environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.pledge-extract")
	v.AddConfigPath(".pledge-extract")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PLEDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file present but unreadable: warn and continue with
			// defaults and environment variables.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("extract.pledge_equals_payment", true)
	v.SetDefault("extract.default_percentage", 100)
	v.SetDefault("extract.default_book_label", "GN1")
	v.SetDefault("output.sheet_name", "Extracted")
}

func validateConfig(config *Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(config.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Extract.DefaultPercentage < 0 || config.Extract.DefaultPercentage > 100 {
		return fmt.Errorf("default_percentage must be between 0 and 100, got %d", config.Extract.DefaultPercentage)
	}

	if config.Output.SheetName == "" {
		return fmt.Errorf("output sheet name must not be empty")
	}

	return nil
}
