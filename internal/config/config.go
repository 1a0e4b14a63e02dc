package config

import (
	"strings"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Redis  RedisConfig  `mapstructure:"redis" validate:"required"`
	Kafka  KafkaConfig  `mapstructure:"kafka" validate:"required"`
	Audit  AuditConfig  `mapstructure:"audit"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// CallTimeout bounds every outbound store/broker call so one slow
	// dependency cannot stall the gateway.
	CallTimeout time.Duration `mapstructure:"call_timeout" validate:"required"`
}

// RedisConfig contains the shared state store settings.
type RedisConfig struct {
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`
	DB   int    `mapstructure:"db" validate:"gte=0"`
}

// KafkaConfig contains the message broker settings.
type KafkaConfig struct {
	// Brokers is a comma-separated list of bootstrap addresses.
	Brokers string `mapstructure:"brokers" validate:"required"`
	// WorkerGroup is the consumer group the worker pool registers in,
	// used only for the readiness probe.
	WorkerGroup string `mapstructure:"worker_group" validate:"required"`
}

// AuditConfig contains the optional text-safety audit settings. An
// empty endpoint disables the audit (everything passes).
type AuditConfig struct {
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

// BrokerList splits the configured bootstrap addresses.
func (c KafkaConfig) BrokerList() []string {
	parts := strings.Split(c.Brokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
