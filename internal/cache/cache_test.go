package cache

import (
	"context"
	"errors"
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

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSONRoundTrip(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	found, err := GetJSON(ctx, "missing", &payload{})
	require.NoError(t, err)
	assert.False(t, found)

	in := payload{Name: "trending", Count: 3}
	require.NoError(t, SetJSON(ctx, "k", in, time.Minute))

	var out payload
	found, err = GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestAsideFetchesOnceWithinTTL(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			*dest = payload{Name: "db", Count: calls}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "trending", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)

	var second payload
	require.NoError(t, Aside(ctx, "trending", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls, "second read within TTL must come from cache")
	assert.Equal(t, first, second)
}

func TestAsideExpiryRefetches(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	var out payload
	fetch := func() error {
		calls++
		out = payload{Name: "db", Count: calls}
		return nil
	}

	require.NoError(t, Aside(ctx, "k", &out, time.Minute, fetch))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, Aside(ctx, "k", &out, time.Minute, fetch))
	assert.Equal(t, 2, calls)
}

func TestAsidePropagatesFetchError(t *testing.T) {
	setupMiniredis(t)

	boom := errors.New("db down")
	var out payload
	err := Aside(context.Background(), "k", &out, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestNilClientDegradesGracefully(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "k", payload{}, time.Minute))
	found, err := GetJSON(ctx, "k", &payload{})
	require.NoError(t, err)
	assert.False(t, found)

	calls := 0
	var out payload
	require.NoError(t, Aside(ctx, "k", &out, time.Minute, func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls, "cache off means straight fetch")
	Invalidate(ctx, "k")
}
