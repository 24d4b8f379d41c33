package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(func() { client = nil })
	return mr
}

func TestAside_CacheMissThenHit(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	loads := 0
	load := func(dest *string) func() error {
		return func() error {
			loads++
			*dest = "loaded"
			return nil
		}
	}

	var got string
	require.NoError(t, Aside(ctx, "k", &got, time.Minute, load(&got)))
	assert.Equal(t, "loaded", got)
	assert.Equal(t, 1, loads)

	// Second call is served from the cache.
	var again string
	require.NoError(t, Aside(ctx, "k", &again, time.Minute, load(&again)))
	assert.Equal(t, "loaded", again)
	assert.Equal(t, 1, loads)
}

func TestAside_LoadErrorNotCached(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	wantErr := assert.AnError
	var dest string
	err := Aside(ctx, "k", &dest, time.Minute, func() error { return wantErr })
	assert.Equal(t, wantErr, err)

	loads := 0
	require.NoError(t, Aside(ctx, "k", &dest, time.Minute, func() error {
		loads++
		dest = "recovered"
		return nil
	}))
	assert.Equal(t, 1, loads)
	assert.Equal(t, "recovered", dest)
}

func TestAside_NoClientIsPassthrough(t *testing.T) {
	client = nil

	loads := 0
	var dest int
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(context.Background(), "k", &dest, time.Minute, func() error {
			loads++
			dest = 7
			return nil
		}))
	}
	assert.Equal(t, 2, loads)
	assert.Equal(t, 7, dest)
}

func TestInvalidate(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	var dest string
	require.NoError(t, Aside(ctx, UserKey(1), &dest, time.Minute, func() error {
		dest = "cached"
		return nil
	}))
	assert.True(t, mr.Exists(UserKey(1)))

	InvalidateUser(ctx, 1)
	assert.False(t, mr.Exists(UserKey(1)))
}

func TestInitRedis_UnreachableDegradesGracefully(t *testing.T) {
	InitRedis("localhost:1") // nothing listening
	assert.Nil(t, GetClient())
}
