package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboard struct {
	Total int     `json:"total"`
	Rate  float64 `json:"rate"`
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Addr(), "", 0)
	require.NotNil(t, client)
	defer client.Close()

	c := New(client, "auditionhub")
	ctx := context.Background()

	var out dashboard
	assert.ErrorIs(t, c.Get(ctx, "dashboard:u1", &out), ErrMiss)

	require.NoError(t, c.Set(ctx, "dashboard:u1", dashboard{Total: 3, Rate: 33.3}, time.Minute))
	assert.True(t, mr.Exists("auditionhub:dashboard:u1"))

	require.NoError(t, c.Get(ctx, "dashboard:u1", &out))
	assert.Equal(t, dashboard{Total: 3, Rate: 33.3}, out)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, c.Get(ctx, "dashboard:u1", &out), ErrMiss)

	require.NoError(t, c.Set(ctx, "dashboard:u1", dashboard{Total: 1}, time.Minute))
	require.NoError(t, c.Delete(ctx, "dashboard:u1"))
	assert.ErrorIs(t, c.Get(ctx, "dashboard:u1", &out), ErrMiss)
}

func TestNewRedisClient_Unavailable(t *testing.T) {
	assert.Nil(t, NewRedisClient("", "", 0))
	assert.Nil(t, NewRedisClient("127.0.0.1:1", "", 0))
	assert.IsType(t, NoopCache{}, New(nil, "x"))
}

func TestNoopCache(t *testing.T) {
	var c Cache = NoopCache{}
	var out dashboard
	require.NoError(t, c.Set(context.Background(), "k", dashboard{}, time.Minute))
	assert.ErrorIs(t, c.Get(context.Background(), "k", &out), ErrMiss)
	assert.NoError(t, c.Delete(context.Background(), "k"))
}
