// Package store persists the simulation's four state fields in a
// key-value store.
package store

import (
	"context"
	"fmt"
)

// Keys of the persisted fields.
const (
	KeyWorkBuffer = "workBuffer"
	KeyMoney      = "money"
	KeyAdminFees  = "adminFees"
	KeyWorkers    = "workers"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Store is a synchronous, last-write-wins key-value store.
type Store interface {
	// Load returns the value for key. ok is false when the key was never saved.
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open constructs the backend named by backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
