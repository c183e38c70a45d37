// Package slot stores opaque values under string keys.
//
// A slot holds a single value which is read once at startup and fully
// replaced on every write. Backends only differ in where that value lives.
package slot

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNotFound is returned by Get when nothing was ever stored under the key.
	ErrNotFound = errors.New("slot: not found")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("slot: unknown backend")
)

// Slot reads and overwrites values by key.
type Slot interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// Backend is a Slot holding resources.
type Backend interface {
	Slot
	io.Closer
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Backend string // one of the Backend* names

	// Path is the directory of the file backend, or the database file of the sqlite backend.
	Path string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open returns the backend described by cfg.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(cfg.Path), nil
	case BackendSQLite:
		return OpenSQLite(ctx, cfg.Path)
	case BackendRedis:
		return DialRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, cfg.Backend)
	}
}
