package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	NewRelic NewRelicConfig `yaml:"new_relic"`
	Log      LogConfig      `yaml:"log"`
	Rooming  RoomingConfig  `yaml:"rooming"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
	GinMode      string   `yaml:"gin_mode"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// RedisConfig contains the Redis settings used for room locks. An empty
// address keeps the locks in process.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// NewRelicConfig contains APM settings
type NewRelicConfig struct {
	AppName string `yaml:"app_name"`
	License string `yaml:"license"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// RoomingConfig contains room allocation settings
type RoomingConfig struct {
	LockTTLSeconds int `yaml:"lock_ttl_seconds"`
}

// Load builds the configuration. A .env file is loaded when present, the
// YAML file at configPath (optional, may be empty) provides base values and
// environment variables override both.
func Load(configPath string) (*Config, error) {
	// Missing .env is normal outside local development
	_ = godotenv.Load()

	var cfg Config
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := cfg.overrideWithEnv(); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.GinMode, "GIN_MODE")
	if val := os.Getenv("CORS_ALLOW_ORIGINS"); val != "" {
		c.Server.AllowOrigins = splitList(val)
	}

	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSL_MODE")

	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	if err := setInt(&c.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}

	setString(&c.NewRelic.License, "NEW_RELIC_LICENSE_KEY")
	setString(&c.NewRelic.AppName, "NEW_RELIC_APP_NAME")

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	return setInt(&c.Rooming.LockTTLSeconds, "ROOM_LOCK_TTL_SECONDS")
}

func (c *Config) applyDefaults() {
	defaultString(&c.Server.Port, "8080")
	if len(c.Server.AllowOrigins) == 0 {
		c.Server.AllowOrigins = []string{"*"}
	}

	defaultString(&c.Database.Host, "localhost")
	defaultString(&c.Database.Port, "5432")
	defaultString(&c.Database.User, "postgres")
	defaultString(&c.Database.Password, "postgres")
	defaultString(&c.Database.Name, "umrah")
	defaultString(&c.Database.SSLMode, "disable")

	defaultString(&c.NewRelic.AppName, "Umrah Backoffice API")

	defaultString(&c.Log.Level, "info")
	defaultString(&c.Log.Format, "text")

	if c.Rooming.LockTTLSeconds == 0 {
		c.Rooming.LockTTLSeconds = 30
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %s", c.Server.Port)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Rooming.LockTTLSeconds < 0 {
		return fmt.Errorf("room lock ttl cannot be negative: %d", c.Rooming.LockTTLSeconds)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis db: %d", c.Redis.DB)
	}
	return nil
}

// DatabaseConnectionString returns a lib/pq key-value connection string
func (c *Config) DatabaseConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password,
		c.Database.Name, c.Database.SSLMode)
}

// ServerAddress returns the listen address of the HTTP server
func (c *Config) ServerAddress() string {
	return ":" + c.Server.Port
}

// RoomLockTTL returns how long a room lock is held before it expires
func (c *Config) RoomLockTTL() time.Duration {
	return time.Duration(c.Rooming.LockTTLSeconds) * time.Second
}

func setString(target *string, key string) {
	if val := os.Getenv(key); val != "" {
		*target = val
	}
}

func setInt(target *int, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	*target = n
	return nil
}

func defaultString(target *string, value string) {
	if *target == "" {
		*target = value
	}
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
