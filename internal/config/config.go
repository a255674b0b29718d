package config

import "fmt"

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Events   EventsConfig   `mapstructure:"events"`
	Forecast ForecastConfig `mapstructure:"forecast"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json or console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or a file path
}

// EventsConfig represents comparison-event publishing configuration
type EventsConfig struct {
	Type     string `mapstructure:"type"`     // Publisher type: memory (default), nats, redis, kafka, none
	URL      string `mapstructure:"url"`      // Broker URL (e.g., nats://localhost:4222, redis://localhost:6379)
	Username string `mapstructure:"username"` // Optional authentication
	Password string `mapstructure:"password"` // Optional authentication
	Subject  string `mapstructure:"subject"`  // Subject/topic/stream for comparison events

	// Redis-specific options
	RedisDB     int    `mapstructure:"redis_db"`     // Redis database number (default: 0)
	RedisStream string `mapstructure:"redis_stream"` // Redis stream prefix (default: "aircast")

	// Kafka-specific options
	KafkaBrokers []string `mapstructure:"kafka_brokers"` // Kafka broker addresses
}

// ForecastConfig holds defaults for the model comparison engine
type ForecastConfig struct {
	TargetColumn  string  `mapstructure:"target_column"`  // Default target pollutant column
	ForecastSteps int     `mapstructure:"forecast_steps"` // Default forecast horizon
	TestSize      float64 `mapstructure:"test_size"`      // Held-out fraction in (0,1)
	MinRows       int     `mapstructure:"min_rows"`       // Global minimum dataset size

	Seasonal SeasonalConfig `mapstructure:"seasonal"`
	GBT      GBTConfig      `mapstructure:"gbt"`
}

// SeasonalConfig holds Holt-Winters smoothing parameters
type SeasonalConfig struct {
	Period int     `mapstructure:"period"` // Seasonal period in observations
	Alpha  float64 `mapstructure:"alpha"`  // Level smoothing factor (0-1)
	Beta   float64 `mapstructure:"beta"`   // Trend smoothing factor (0-1)
	Gamma  float64 `mapstructure:"gamma"`  // Seasonal smoothing factor (0-1)
}

// GBTConfig holds gradient-boosted tree hyperparameters
type GBTConfig struct {
	NEstimators   int     `mapstructure:"n_estimators"`   // Number of boosting rounds
	MaxDepth      int     `mapstructure:"max_depth"`      // Max regression tree depth
	LearningRate  float64 `mapstructure:"learning_rate"`  // Shrinkage applied to each tree
	MinLeafSize   int     `mapstructure:"min_leaf_size"`  // Minimum samples per leaf
	Lags          []int   `mapstructure:"lags"`           // Lag offsets used as features
	RollingWindow int     `mapstructure:"rolling_window"` // Window for rolling mean/std features
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.Server.HTTPPort)
	}
	if c.Forecast.TestSize <= 0 || c.Forecast.TestSize >= 1 {
		return fmt.Errorf("forecast.test_size must be in (0,1), got %v", c.Forecast.TestSize)
	}
	if c.Forecast.ForecastSteps < 1 {
		return fmt.Errorf("forecast.forecast_steps must be >= 1, got %d", c.Forecast.ForecastSteps)
	}
	if c.Forecast.MinRows < 2 {
		return fmt.Errorf("forecast.min_rows must be >= 2, got %d", c.Forecast.MinRows)
	}
	if c.Forecast.TargetColumn == "" {
		return fmt.Errorf("forecast.target_column must not be empty")
	}
	if c.Forecast.Seasonal.Period < 2 {
		return fmt.Errorf("forecast.seasonal.period must be >= 2, got %d", c.Forecast.Seasonal.Period)
	}
	if c.Forecast.GBT.NEstimators < 1 {
		return fmt.Errorf("forecast.gbt.n_estimators must be >= 1, got %d", c.Forecast.GBT.NEstimators)
	}
	if c.Forecast.GBT.MaxDepth < 1 {
		return fmt.Errorf("forecast.gbt.max_depth must be >= 1, got %d", c.Forecast.GBT.MaxDepth)
	}
	if c.Forecast.GBT.LearningRate <= 0 || c.Forecast.GBT.LearningRate > 1 {
		return fmt.Errorf("forecast.gbt.learning_rate must be in (0,1], got %v", c.Forecast.GBT.LearningRate)
	}
	if len(c.Forecast.GBT.Lags) == 0 {
		return fmt.Errorf("forecast.gbt.lags must not be empty")
	}
	for _, lag := range c.Forecast.GBT.Lags {
		if lag < 1 {
			return fmt.Errorf("forecast.gbt.lags must all be >= 1, got %d", lag)
		}
	}
	return nil
}
