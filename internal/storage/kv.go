package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("storage: not found")
	ErrCorrupt  = errors.New("storage: corrupt value")
)

// KV is a string-keyed store of serialized values, modelled on browser local
// storage: each key holds one opaque value that is replaced wholesale on Put.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendJSON, BackendSQLite:
		return true
	default:
		return false
	}
}

// Open returns the KV implementation for backend rooted at path.
func Open(backend Backend, path string) (KV, error) {
	switch backend {
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendJSON, "":
		return NewFileKV(path), nil
	default:
		return nil, errors.New("storage: unknown backend " + string(backend))
	}
}
