package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables with the
// TASKGATE_ prefix (e.g. TASKGATE_SERVER_PORT, TASKGATE_KAFKA_BROKERS),
// falling back to defaults, and validates the result.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8989)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.call_timeout", 5*time.Second)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.worker_group", "creator-consumer-1")
	v.SetDefault("audit.endpoint", "")

	v.SetEnvPrefix("TASKGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Environment values are strings; coerce them to the defaults' types.
	v.SetTypeByDefaultValue(true)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
