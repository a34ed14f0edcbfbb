package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, Key("a|b"))
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, Key("a|b"), []byte(`{"regex":"a|b"}`)))
	got, err := s.Get(ctx, Key("a|b"))
	require.NoError(t, err)
	assert.Equal(t, `{"regex":"a|b"}`, string(got))

	require.NoError(t, s.Set(ctx, Key("a|b"), []byte(`{}`)))
	got, err = s.Get(ctx, Key("a|b"))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))

	_, err = s.Get(ctx, Key("ab"))
	assert.ErrorIs(t, err, ErrMiss)
}

func TestKey(t *testing.T) {
	assert.Len(t, Key(""), 64)
	assert.Equal(t, Key("a*"), Key("a*"))
	assert.NotEqual(t, Key("a*"), Key("a+"))
}

func TestMemoryContract(t *testing.T) {
	runStoreContract(t, NewMemory(0))
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	now = now.Add(59 * time.Second)
	_, err := m.Get(ctx, "k")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCopiesValue(t *testing.T) {
	m := NewMemory(0)
	v := []byte("abc")
	require.NoError(t, m.Set(context.Background(), "k", v))
	v[0] = 'x'
	got, _ := m.Get(context.Background(), "k")
	assert.Equal(t, "abc", string(got))
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisContract(t *testing.T) {
	_, client := newMiniredis(t)
	store := NewFromClient(client)
	defer store.Close()
	require.NoError(t, store.Ping(context.Background()))
	runStoreContract(t, store)
}

func TestRedisPrefixAndTTL(t *testing.T) {
	mr, client := newMiniredis(t)
	store := NewFromClient(client, WithPrefix("test:"), WithTTL(time.Minute))
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "k", []byte("v")))
	assert.True(t, mr.Exists("test:k"))
	assert.Equal(t, time.Minute, mr.TTL("test:k"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisUnavailable(t *testing.T) {
	mr, client := newMiniredis(t)
	store := NewFromClient(client)
	defer store.Close()
	mr.Close()

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
