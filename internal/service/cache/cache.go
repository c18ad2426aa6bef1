package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMiss is returned by the typed helpers when a key is absent or expired.
var ErrMiss = errors.New("cache: key not found")

// BytesCache is a minimal cache API storing raw bytes with TTL.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// GetJSON decodes the cached value at key into a T.
func GetJSON[T any](ctx context.Context, c BytesCache, key string) (T, error) {
	var v T
	b, ok, err := c.GetBytes(ctx, key)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, ErrMiss
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return v, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c BytesCache, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.SetBytes(ctx, key, b, ttl)
}

// Key joins a prefix with the hex SHA-256 of payload.
func Key(prefix string, payload []byte) string {
	sum := sha256.Sum256(payload)
	return prefix + ":" + hex.EncodeToString(sum[:])
}
