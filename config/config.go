// Package config loads the coinfolio settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/coinfolio/slot"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvBackend       = "COINFOLIO_BACKEND"
	EnvPath          = "COINFOLIO_PATH"
	EnvKey           = "COINFOLIO_KEY"
	EnvRedisAddr     = "COINFOLIO_REDIS_ADDR"
	EnvRedisPassword = "COINFOLIO_REDIS_PASSWORD"
	EnvRedisDB       = "COINFOLIO_REDIS_DB"
	EnvRedisPrefix   = "COINFOLIO_REDIS_PREFIX"
	EnvPrices        = "COINFOLIO_PRICES"
	EnvPricesPath    = "COINFOLIO_PRICES_PATH"
	EnvCurrency      = "COINFOLIO_CURRENCY"
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogPretty     = "LOG_PRETTY"
)

// Config holds application configuration
type Config struct {
	Backend string // slot backend name
	Path    string // file backend directory or sqlite database file
	Key     string // slot key of the portfolio

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	PricesFile string // optional JSON document with the price catalog
	PricesPath string // JSONPath selector of the prices in PricesFile
	Currency   string

	LogLevel  string
	LogPretty bool
}

// Load reads the configuration from environment variables.
//
// Values missing from the environment are looked up in the dotenv files
// (".env" in the current directory when none is given, silently skipped if
// absent), then defaulted. Explicitly listed files must exist.
func Load(files ...string) (*Config, error) {
	env := environment{}
	if len(files) == 0 {
		if values, err := godotenv.Read(); err == nil {
			env.file = values
		}
	} else {
		values, err := godotenv.Read(files...)
		if err != nil {
			return nil, fmt.Errorf("cannot read configuration: %w", err)
		}
		env.file = values
	}

	cfg := &Config{
		Backend:       env.get(EnvBackend, slot.BackendFile),
		Key:           env.get(EnvKey, "cryptoPortfolio"),
		RedisAddr:     env.get(EnvRedisAddr, "localhost:6379"),
		RedisPassword: env.get(EnvRedisPassword, ""),
		RedisDB:       env.getInt(EnvRedisDB, 0),
		RedisPrefix:   env.get(EnvRedisPrefix, "coinfolio"),
		PricesFile:    env.get(EnvPrices, ""),
		PricesPath:    env.get(EnvPricesPath, "$"),
		Currency:      env.get(EnvCurrency, "USD"),
		LogLevel:      env.get(EnvLogLevel, "warn"),
		LogPretty:     env.getBool(EnvLogPretty, true),
	}
	cfg.Path = env.get(EnvPath, DefaultPath(cfg.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the default storage location of a backend.
func DefaultPath(backend string) string {
	switch backend {
	case slot.BackendSQLite:
		return ".coinfolio/coinfolio.db"
	case slot.BackendFile:
		return ".coinfolio"
	}
	return ""
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	switch c.Backend {
	case slot.BackendFile, slot.BackendSQLite:
		if c.Path == "" {
			return fmt.Errorf("%s is required for the %s backend", EnvPath, c.Backend)
		}
	case slot.BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%s is required for the redis backend", EnvRedisAddr)
		}
	case slot.BackendMemory:
	default:
		return fmt.Errorf("%s: %w %q", EnvBackend, slot.ErrUnknownBackend, c.Backend)
	}
	if c.Key == "" {
		return fmt.Errorf("%s must not be empty", EnvKey)
	}
	return nil
}

// Slot returns the slot backend configuration.
func (c *Config) Slot() slot.Config {
	return slot.Config{
		Backend:       c.Backend,
		Path:          c.Path,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisPrefix,
	}
}

// environment looks values up in the process environment first, then in dotenv values.
type environment struct {
	file map[string]string
}

func (e environment) get(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value := e.file[key]; value != "" {
		return value
	}
	return defaultValue
}

func (e environment) getInt(key string, defaultValue int) int {
	if intVal, err := strconv.Atoi(e.get(key, "")); err == nil {
		return intVal
	}
	return defaultValue
}

func (e environment) getBool(key string, defaultValue bool) bool {
	if boolVal, err := strconv.ParseBool(e.get(key, "")); err == nil {
		return boolVal
	}
	return defaultValue
}
