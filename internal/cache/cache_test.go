package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetExpire(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := New(ctx, true)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	etag := c.Set("superteams", []byte(`[]`), time.Minute)
	data, got, ok := c.Get("superteams")
	require.True(t, ok)
	assert.Equal(t, `[]`, string(data))
	assert.Equal(t, etag, got)

	now = now.Add(2 * time.Minute)
	_, _, ok = c.Get("superteams")
	assert.False(t, ok)

	c.evict()
	stats := c.Stats()
	assert.Equal(t, 0, stats["total_keys"])
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
}

func TestDisabledCache(t *testing.T) {
	c := New(context.Background(), false)
	etag := c.Set("k", []byte("v"), time.Hour)
	assert.Equal(t, ComputeETag([]byte("v")), etag)
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestFetch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := New(ctx, true)

	calls := 0
	fill := func() ([]byte, error) {
		calls++
		return []byte(`{"message":"hi"}`), nil
	}

	_, etag1, hit, err := c.Fetch("root", time.Hour, fill)
	require.NoError(t, err)
	assert.False(t, hit)
	_, etag2, hit, err := c.Fetch("root", time.Hour, fill)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, etag1, etag2)
	assert.Equal(t, 1, calls)

	boom := errors.New("encode failed")
	_, _, _, err = c.Fetch("other", time.Hour, func() ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("x"))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))
}
