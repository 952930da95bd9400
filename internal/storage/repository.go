// Package storage provides the local key-value store backing the vault core.
// It mirrors the browser build's localStorage: a handful of well-known keys
// holding opaque byte values.
package storage

import "context"

// Repository is a minimal key-value store.
//
// Contract: Get returns (nil, nil) when the key is absent; Delete is
// idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
