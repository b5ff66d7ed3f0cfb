package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+s.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, s
}

func TestSetAndGetJSON(t *testing.T) {
	store, s := setupTestRedis(t)
	ctx := context.Background()

	in := payload{Total: 3, Counts: map[string]int{"live": 1, "scheduled": 2}}
	require.NoError(t, store.SetJSON(ctx, "summary", in))

	assert.True(t, s.Exists("sessiondesk:summary"))

	var out payload
	require.NoError(t, store.GetJSON(ctx, "summary", &out))
	assert.Equal(t, in, out)
}

func TestGetJSON_Miss(t *testing.T) {
	store, _ := setupTestRedis(t)

	var out payload
	err := store.GetJSON(context.Background(), "absent", &out)
	assert.True(t, errors.Is(err, ErrMiss))
}

func TestGetJSON_Expired(t *testing.T) {
	store, s := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.SetJSON(ctx, "clients", payload{Total: 1}))
	s.FastForward(2 * time.Minute)

	var out payload
	assert.ErrorIs(t, store.GetJSON(ctx, "clients", &out), ErrMiss)
}

func TestGetJSON_CorruptValue(t *testing.T) {
	store, s := setupTestRedis(t)
	require.NoError(t, s.Set("sessiondesk:summary", "{not json"))

	var out payload
	err := store.GetJSON(context.Background(), "summary", &out)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMiss))
}

func TestNewRedisStore_BadURL(t *testing.T) {
	_, err := NewRedisStore("not a url", time.Minute)
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	store, _ := setupTestRedis(t)
	assert.NoError(t, store.Ping(context.Background()))
}
