// Package cache stores serialized export documents keyed by pattern.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

// ErrMiss is returned by Get when nothing is cached under the key.
var ErrMiss = errors.New("cache: miss")

// Store is a byte cache shared by server handlers.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Key derives a fixed-size key from a pattern.
func Key(pattern string) string {
	sum := sha256.Sum256([]byte(pattern))
	return hex.EncodeToString(sum[:])
}

type entry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process Store. A zero TTL never expires entries.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, entries: make(map[string]entry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, ErrMiss
	}
	return e.value, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := entry{value: append([]byte(nil), value...)}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.entries[key] = e
	return nil
}

func (m *Memory) Close() error { return nil }
