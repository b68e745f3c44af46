package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/ora-fixa/internal/domain/appointment"
)

func newTestCache(t *testing.T) (*RedisSlotCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisSlotCache(client, time.Minute), mr
}

func current(t *testing.T, c *RedisSlotCache, date string) string {
	t.Helper()
	v, err := c.Version(context.Background(), date)
	require.NoError(t, err)
	return v
}

func TestRedisSlotCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key := SlotKey{Date: "2025-03-10", ServiceID: 1, Step: 30 * time.Minute}

	_, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)

	start := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	slots := []domain.TimeSlot{{Start: "09:00", End: "09:30", StartsAt: start, EndsAt: start.Add(30 * time.Minute)}}
	require.NoError(t, c.Set(ctx, key, current(t, c, key.Date), slots))

	got, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, hit)
	require.Len(t, got, 1)
	assert.Equal(t, "09:00", got[0].Start)
	assert.True(t, got[0].StartsAt.Equal(start))

	assert.Equal(t, time.Minute, mr.TTL(key.String()))
}

func TestRedisSlotCacheEmptyDayIsAHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	key := SlotKey{Date: "2025-03-09", ServiceID: 1}

	require.NoError(t, c.Set(ctx, key, current(t, c, key.Date), nil))

	got, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRedisSlotCacheInvalidateDate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	a := SlotKey{Date: "2025-03-10", ServiceID: 1}
	b := SlotKey{Date: "2025-03-10", ServiceID: 2, Step: 15 * time.Minute}
	other := SlotKey{Date: "2025-03-11", ServiceID: 1}
	for _, k := range []SlotKey{a, b, other} {
		require.NoError(t, c.Set(ctx, k, current(t, c, k.Date), []domain.TimeSlot{}))
	}

	require.NoError(t, c.InvalidateDate(ctx, "2025-03-10"))

	assert.False(t, mr.Exists(a.String()))
	assert.False(t, mr.Exists(b.String()))
	assert.True(t, mr.Exists(other.String()))
}

func TestRedisSlotCacheInvalidateAllKeepsOtherKeys(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	key := SlotKey{Date: "2025-03-10", ServiceID: 1}
	require.NoError(t, c.Set(ctx, key, current(t, c, key.Date), []domain.TimeSlot{}))
	require.NoError(t, mr.Set("session:abc", "x"))

	require.NoError(t, c.InvalidateAll(ctx))

	assert.False(t, mr.Exists(key.String()))
	assert.True(t, mr.Exists("session:abc"))
}

func TestRedisSlotCacheSkipsWriteAfterInvalidation(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key := SlotKey{Date: "2025-03-10", ServiceID: 1}

	// a reader takes the version, a booking lands, then the reader writes
	stale := current(t, c, key.Date)
	require.NoError(t, c.InvalidateDate(ctx, key.Date))
	require.NoError(t, c.Set(ctx, key, stale, []domain.TimeSlot{{Start: "09:00"}}))

	assert.False(t, mr.Exists(key.String()))

	require.NoError(t, c.Set(ctx, key, current(t, c, key.Date), []domain.TimeSlot{}))
	assert.True(t, mr.Exists(key.String()))
}

func TestRedisSlotCacheInvalidateAllVoidsPendingWrites(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key := SlotKey{Date: "2025-03-10", ServiceID: 1}

	stale := current(t, c, key.Date)
	require.NoError(t, c.InvalidateAll(ctx))
	require.NoError(t, c.Set(ctx, key, stale, []domain.TimeSlot{}))

	assert.False(t, mr.Exists(key.String()))
	assert.True(t, mr.Exists(versionAll))
}

func TestRedisSlotCacheCorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	key := SlotKey{Date: "2025-03-10", ServiceID: 3}
	require.NoError(t, mr.Set(key.String(), "{not json"))

	_, hit, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNewClientFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var c SlotCache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, SlotKey{Date: "2025-03-10"}, "", nil))
	_, hit, err := c.Get(ctx, SlotKey{Date: "2025-03-10"})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.InvalidateDate(ctx, "2025-03-10"))
	assert.NoError(t, c.InvalidateAll(ctx))
}
