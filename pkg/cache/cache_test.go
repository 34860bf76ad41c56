package cache_test

import (
	"testing"
	"time"

	"github.com/anikasharma/greenbasket/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackendRoundTrip(t *testing.T) {
	restore := cache.UseMemory()
	defer restore()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, cache.Set("k", payload{Name: "apples", Count: 3}, 0))

	var got payload
	require.True(t, cache.Get("k", &got))
	assert.Equal(t, payload{Name: "apples", Count: 3}, got)

	require.NoError(t, cache.Forget("k"))
	assert.False(t, cache.Get("k", &got))
}

func TestMemoryBackendExpiry(t *testing.T) {
	restore := cache.UseMemory()
	defer restore()

	require.NoError(t, cache.Set("short", "v", time.Nanosecond))
	time.Sleep(time.Millisecond)

	var got string
	assert.False(t, cache.Get("short", &got), "expired entries must read as misses")
}

func TestDisabledBackendMisses(t *testing.T) {
	var got string
	assert.False(t, cache.Get("anything", &got))
	assert.NoError(t, cache.Set("anything", "v", 0))
}
