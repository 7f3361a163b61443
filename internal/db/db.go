// Package db defines the key-value store contract used by the response cache.
package db

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for store operations.
var (
	// ErrKeyNotFound signals a cache miss.
	ErrKeyNotFound = errors.New("db: key not found")
)

// Op constants map to Redis command names for error context.
const (
	OpGet  = "GET"
	OpSet  = "SET"
	OpPing = "PING"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Store is the key-value facade backing the search response cache.
type Store interface {
	Pinger
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close()
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
