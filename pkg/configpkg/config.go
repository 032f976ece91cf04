// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Supported account store drivers.
const (
	StorePostgres = "postgres"
	StoreBolt     = "bolt"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	StoreDriver    string `mapstructure:"STORE_DRIVER"`
	DBDriver       string `mapstructure:"DB_DRIVER"`
	DBSource       string `mapstructure:"DB_SOURCE"`
	BoltPath       string `mapstructure:"BOLT_PATH"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisDB        int    `mapstructure:"REDIS_DB"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	Environment    string `mapstructure:"GO_ENV"`
	MigrateOnStart bool   `mapstructure:"MIGRATE_ON_START"`
}

var defaults = map[string]any{
	"STORE_DRIVER":     StorePostgres,
	"DB_DRIVER":        "postgres",
	"DB_SOURCE":        "",
	"BOLT_PATH":        "accounts.db",
	"REDIS_ADDR":       "localhost:6379",
	"REDIS_DB":         0,
	"SERVER_ADDRESS":   "0.0.0.0:8080",
	"GO_ENV":           "production",
	"MIGRATE_ON_START": false,
}

// Load reads configuration from the app.env file in path and environment variables.
// A missing file is not an error; defaults and the environment are used instead.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	if err := c.Validate(); err != nil {
		return c, err
	}

	return c, nil
}

// Validate checks that the store driver is known and has what it needs.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case StorePostgres:
		if c.DBSource == "" {
			return errors.New("DB_SOURCE is required for the postgres store")
		}
	case StoreBolt:
		if c.BoltPath == "" {
			return errors.New("BOLT_PATH is required for the bolt store")
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	return nil
}
