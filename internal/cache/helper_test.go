package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(func() { client = nil })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var missing cachedDoc
	found, err := GetJSON(ctx, "doc:1", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "doc:1", cachedDoc{Name: "launch", Count: 3}, time.Minute))

	var got cachedDoc
	found, err = GetJSON(ctx, "doc:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "launch", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestAside_FetchesOnMissThenServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedDoc) func() error {
		return func() error {
			fetches++
			*dest = cachedDoc{Name: "fetched", Count: fetches}
			return nil
		}
	}

	var first cachedDoc
	require.NoError(t, Aside(ctx, "doc:aside", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "fetched", first.Name)

	var second cachedDoc
	require.NoError(t, Aside(ctx, "doc:aside", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read should come from cache")
	assert.Equal(t, first, second)
}

func TestAside_ExpiryTriggersRefetch(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var doc cachedDoc
	fetch := func() error {
		fetches++
		doc = cachedDoc{Name: "fresh", Count: fetches}
		return nil
	}

	require.NoError(t, Aside(ctx, "doc:ttl", &doc, time.Minute, fetch))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, Aside(ctx, "doc:ttl", &doc, time.Minute, fetch))
	assert.Equal(t, 2, fetches)
}

func TestInvalidate(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ScheduleKey(7), cachedDoc{Name: "stale"}, time.Minute))
	InvalidateSchedule(ctx, 7)

	var got cachedDoc
	found, err := GetJSON(ctx, ScheduleKey(7), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHelpersNoopWithoutClient(t *testing.T) {
	client = nil
	ctx := context.Background()

	var got cachedDoc
	found, err := GetJSON(ctx, "doc:none", &got)
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, SetJSON(ctx, "doc:none", got, time.Minute))
	Invalidate(ctx, "doc:none")
}
