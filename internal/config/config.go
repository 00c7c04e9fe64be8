// Package config loads process configuration from the environment and an
// optional config file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is read once at startup and passed down explicitly.
type Config struct {
	AppPort string

	DatabaseDriver   string
	DatabaseDSN      string
	DBConnectRetries uint64

	SecretKey      string
	AccessTokenTTL time.Duration
	BcryptCost     int

	RabbitMQURL string

	LogLevel    string
	LogFormat   string
	CORSOrigins string
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "wishlist.db?_foreign_keys=on")
	v.SetDefault("DB_CONNECT_RETRIES", 5)
	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CORS_ORIGINS", "*")
}

// Load reads configuration from the environment and, when configFile is
// not empty, from that file. Environment variables win.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	return FromViper(v)
}

// FromViper builds and validates a Config from an already populated viper
// instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:          v.GetString("APP_PORT"),
		DatabaseDriver:   strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		DBConnectRetries: v.GetUint64("DB_CONNECT_RETRIES"),
		SecretKey:        v.GetString("SECRET_KEY"),
		AccessTokenTTL:   time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute,
		BcryptCost:       v.GetInt("BCRYPT_COST"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		CORSOrigins:      v.GetString("CORS_ORIGINS"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY must be set")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must be set")
	}
	return nil
}
