package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Dispatch DispatchConfig
	Store    StoreConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DispatchConfig holds outbound notification configuration.
// The webhook endpoint is injected here rather than read from a package
// global so tests and deployments can point the dispatcher anywhere.
type DispatchConfig struct {
	WebhookURL string
	Recipient  string
	Timeout    time.Duration
}

// StoreConfig holds pending-recommendation store configuration
type StoreConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Env string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Dispatch: DispatchConfig{
			WebhookURL: getEnv("DISPATCH_WEBHOOK_URL", ""),
			Recipient:  getEnv("DISPATCH_RECIPIENT", "referrals@careroute.example"),
			Timeout:    getEnvAsDuration("DISPATCH_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			TTL:           getEnvAsDuration("STORE_TTL", 30*time.Minute),
			SweepInterval: getEnvAsDuration("STORE_SWEEP_INTERVAL", time.Minute),
		},
		Log: LogConfig{
			Env: getEnv("APP_ENV", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present and sane
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Dispatch.Timeout <= 0 {
		return fmt.Errorf("dispatch timeout must be positive")
	}
	if c.Store.TTL <= 0 {
		return fmt.Errorf("store TTL must be positive")
	}
	return nil
}

// ServerAddr returns the host:port address for the HTTP server
func (c *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
