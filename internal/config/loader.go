package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load loads configuration from file with environment variable overrides
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/aircast")
	}

	setDefaults(v)

	v.SetEnvPrefix("AIRCAST")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// Default returns the default configuration without reading any file
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := parseConfig(v)
	if err != nil {
		// Defaults are static and validated by tests; this cannot happen at runtime
		panic(fmt.Sprintf("invalid default config: %v", err))
	}
	return cfg
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8600)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")

	// Events defaults
	v.SetDefault("events.type", "memory")
	v.SetDefault("events.subject", "aircast.comparison.completed")
	v.SetDefault("events.redis_stream", "aircast")

	// Forecast defaults
	v.SetDefault("forecast.target_column", "PM2.5")
	v.SetDefault("forecast.forecast_steps", 6)
	v.SetDefault("forecast.test_size", 0.2)
	v.SetDefault("forecast.min_rows", 20)
	v.SetDefault("forecast.seasonal.period", 12)
	v.SetDefault("forecast.seasonal.alpha", 0.3)
	v.SetDefault("forecast.seasonal.beta", 0.1)
	v.SetDefault("forecast.seasonal.gamma", 0.1)
	v.SetDefault("forecast.gbt.n_estimators", 100)
	v.SetDefault("forecast.gbt.max_depth", 3)
	v.SetDefault("forecast.gbt.learning_rate", 0.1)
	v.SetDefault("forecast.gbt.min_leaf_size", 2)
	v.SetDefault("forecast.gbt.lags", []int{1, 2, 3, 6, 12})
	v.SetDefault("forecast.gbt.rolling_window", 3)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
