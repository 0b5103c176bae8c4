package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound    = errors.New("storage: not found")
	ErrUnknownKind = errors.New("storage: unknown store kind")
	ErrEmptyKey    = errors.New("storage: key is required")
)

// Store is a string-keyed value store. Implementations replace the whole
// value on Set and treat Remove of a missing key as a no-op.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

type Kind string

const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindRedis  Kind = "redis"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindMemory, KindFile, KindSQLite, KindRedis:
		return true
	default:
		return false
	}
}

func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
	return k, nil
}

type Options struct {
	Kind      Kind
	Path      string
	RedisAddr string
	RedisDB   int
}

// Open builds the store selected by opts.Kind.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Kind {
	case KindMemory:
		return NewMemoryStore(), nil
	case KindFile:
		return OpenFile(opts.Path)
	case KindSQLite:
		return OpenSQLite(opts.Path)
	case KindRedis:
		return OpenRedis(ctx, opts.RedisAddr, opts.RedisDB)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}
