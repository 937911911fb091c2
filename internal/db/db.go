package db

import (
	"context"
	"time"
)

// Store is the key-value facade used by the catalog source.
type Store interface {
	Pinger
	KVGetter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVGetter reads raw values by key.
type KVGetter interface {
	Get(ctx context.Context, key string) ([]byte, error)
}
