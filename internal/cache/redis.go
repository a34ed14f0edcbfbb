package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "regexviz:export:"

// Redis is a Store backed by a Redis server.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Redis)

// WithTTL sets the expiration of cached documents.
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis connects to the server at address.
func NewRedis(address, password string, db int, opts ...Option) *Redis {
	return NewFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Redis {
	r := &Redis{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
