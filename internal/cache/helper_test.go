package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	var dest payload
	found, err := GetJSON(ctx, "missing", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "key", payload{Name: "go", Count: 3}, time.Minute))

	found, err = GetJSON(ctx, "key", &dest)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "go", Count: 3}, dest)
}

func TestAsideFetchesOnceAndCaches(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			*dest = payload{Name: "fetched", Count: calls}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "aside", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)

	// second read is served from the cache
	var second payload
	require.NoError(t, Aside(ctx, "aside", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestInvalidateProfile(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ProfileKey(7), payload{Name: "p"}, time.Minute))
	require.NoError(t, SetJSON(ctx, ProfileListKey, payload{Name: "list"}, time.Minute))

	InvalidateProfile(ctx, 7)

	assert.False(t, mr.Exists(ProfileKey(7)))
	assert.False(t, mr.Exists(ProfileListKey))
}

func TestHelpersNoopWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var dest payload
	found, err := GetJSON(ctx, "key", &dest)
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, SetJSON(ctx, "key", payload{}, time.Minute))

	// Aside falls straight through to fetch
	calls := 0
	require.NoError(t, Aside(ctx, "key", &dest, time.Minute, func() error {
		calls++
		dest = payload{Name: "direct"}
		return nil
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "direct", dest.Name)
}
