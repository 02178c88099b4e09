// Package config provides Viper-based hierarchical configuration management
// for the cost-of-living pipeline: defaults, then an optional yaml file, then
// COL_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// USDToEURRate is the documented fixed conversion rate applied to the raw
// survey prices. Overridable via pipeline.usd_to_eur_rate.
const USDToEURRate = 1.0824

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
		Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter" validate:"len=1"`
	} `mapstructure:"csv" yaml:"csv"`

	Pipeline struct {
		USDToEURRate float64  `mapstructure:"usd_to_eur_rate" yaml:"usd_to_eur_rate" validate:"gt=0"`
		Countries    []string `mapstructure:"countries" yaml:"countries" validate:"min=1"`
	} `mapstructure:"pipeline" yaml:"pipeline"`

	Geocoder struct {
		BaseURL           string `mapstructure:"base_url" yaml:"base_url" validate:"url"`
		UserAgent         string `mapstructure:"user_agent" yaml:"user_agent" validate:"required"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds" validate:"gt=0"`
		Workers           int    `mapstructure:"workers" yaml:"workers" validate:"gt=0"`
		MinIntervalMillis int    `mapstructure:"min_interval_millis" yaml:"min_interval_millis" validate:"gte=0"`
		CacheFile         string `mapstructure:"cache_file" yaml:"cache_file"`
	} `mapstructure:"geocoder" yaml:"geocoder"`
}

// EUCountries is the fixed allow-list applied by the quality filter unless
// pipeline.countries overrides it.
var EUCountries = []string{
	"Austria", "Belgium", "Bulgaria", "Croatia", "Cyprus", "Czech Republic",
	"Denmark", "Estonia", "Finland", "France", "Germany", "Greece", "Hungary",
	"Ireland", "Italy", "Latvia", "Lithuania", "Luxembourg", "Malta",
	"Netherlands", "Poland", "Portugal", "Romania", "Slovakia", "Slovenia",
	"Spain", "Sweden",
}

// InitializeConfig loads the configuration with hierarchical precedence.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.cost-of-living")
	v.AddConfigPath(".cost-of-living")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("COL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
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

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("pipeline.usd_to_eur_rate", USDToEURRate)
	v.SetDefault("pipeline.countries", EUCountries)

	v.SetDefault("geocoder.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoder.user_agent", "cost-of-living/1.0")
	v.SetDefault("geocoder.timeout_seconds", 10)
	v.SetDefault("geocoder.workers", 2)
	v.SetDefault("geocoder.min_interval_millis", 1100)
	v.SetDefault("geocoder.cache_file", "geocache.yaml")
}

var validate = validator.New()

func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return err
	}
	return nil
}
