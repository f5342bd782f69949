package catalog

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomescape/internal/queue"
)

type countingSlots struct {
	calls int
	slots map[int64]queue.SlotSummary
}

func (c *countingSlots) ResolveSlot(_ context.Context, id int64) (queue.SlotSummary, error) {
	c.calls++
	s, ok := c.slots[id]
	if !ok {
		return queue.SlotSummary{}, &queue.NotFoundError{Kind: queue.KindSchedule, ID: id}
	}
	return s, nil
}

func newCache(t *testing.T) (*CachedSlots, *countingSlots, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	src := &countingSlots{slots: map[int64]queue.SlotSummary{
		1: {ID: 1, ThemeName: "Prison Break", Price: 22000, Date: "2026-10-20", Time: "13:00"},
	}}
	return NewCachedSlots(src, rdb, time.Minute, logger), src, mr
}

func TestCachedSlotsReadThrough(t *testing.T) {
	cache, src, mr := newCache(t)
	ctx := context.Background()

	first, err := cache.ResolveSlot(ctx, 1)
	require.NoError(t, err)
	second, err := cache.ResolveSlot(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls)
	assert.True(t, mr.Exists(slotKey(1)))
	assert.Equal(t, time.Minute, mr.TTL(slotKey(1)))
}

func TestCachedSlotsDoesNotCacheMissing(t *testing.T) {
	cache, src, mr := newCache(t)
	ctx := context.Background()

	_, err := cache.ResolveSlot(ctx, 2)
	assert.True(t, queue.IsNotFound(err))
	_, err = cache.ResolveSlot(ctx, 2)
	assert.True(t, queue.IsNotFound(err))

	assert.Equal(t, 2, src.calls)
	assert.False(t, mr.Exists(slotKey(2)))
}

func TestCachedSlotsInvalidate(t *testing.T) {
	cache, src, _ := newCache(t)
	ctx := context.Background()

	_, err := cache.ResolveSlot(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, 1))

	src.slots[1] = queue.SlotSummary{ID: 1, ThemeName: "Prison Break", Price: 25000, Date: "2026-10-20", Time: "13:00"}
	slot, err := cache.ResolveSlot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 25000, slot.Price)
	assert.Equal(t, 2, src.calls)
}

func TestCachedSlotsFallsBackWhenRedisDown(t *testing.T) {
	cache, src, mr := newCache(t)
	mr.Close()

	slot, err := cache.ResolveSlot(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Prison Break", slot.ThemeName)
	assert.Equal(t, 1, src.calls)
}

func TestCachedSlotsReloadsCorruptedEntry(t *testing.T) {
	cache, src, mr := newCache(t)
	require.NoError(t, mr.Set(slotKey(1), "{not json"))

	slot, err := cache.ResolveSlot(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 22000, slot.Price)
	assert.Equal(t, 1, src.calls)
}
