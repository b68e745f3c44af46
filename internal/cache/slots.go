// Package cache keeps computed day slots in Redis so repeated availability
// lookups skip the schedule and appointment reads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/ora-fixa/internal/domain/appointment"
)

// SlotCache stores slots for a (date, service, step) key. Entries hold the
// full day, before slots in the past are removed.
//
// Writers take Version before reading the store and pass it to Set; Set
// stores nothing when the date was invalidated in between.
type SlotCache interface {
	Get(ctx context.Context, key SlotKey) ([]domain.TimeSlot, bool, error)
	Version(ctx context.Context, date string) (string, error)
	Set(ctx context.Context, key SlotKey, version string, slots []domain.TimeSlot) error
	InvalidateDate(ctx context.Context, date string) error
	// InvalidateAll drops every entry; opening hours or a service changed.
	InvalidateAll(ctx context.Context) error
}

type SlotKey struct {
	Date      string
	ServiceID int64
	Step      time.Duration
}

const (
	keyPrefix = "slots:"

	// version counters live outside keyPrefix so flushing entries keeps them
	versionPrefix = "slotver:"
	versionAll    = versionPrefix + "all"
	versionTTL    = 7 * 24 * time.Hour
)

func versionKey(date string) string {
	return versionPrefix + date
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s%s:%d:%d", keyPrefix, k.Date, k.ServiceID, int64(k.Step/time.Minute))
}

type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotCache(client *redis.Client, ttl time.Duration) *RedisSlotCache {
	return &RedisSlotCache{client: client, ttl: ttl}
}

var _ SlotCache = (*RedisSlotCache)(nil)

func (c *RedisSlotCache) Get(ctx context.Context, key SlotKey) ([]domain.TimeSlot, bool, error) {
	val, err := c.client.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal(val, &slots); err != nil {
		// corrupt entry: treat as a miss, the next Set overwrites it
		return nil, false, nil
	}
	if slots == nil {
		slots = []domain.TimeSlot{}
	}
	return slots, true, nil
}

func (c *RedisSlotCache) Version(ctx context.Context, date string) (string, error) {
	return readVersion(ctx, c.client, date)
}

type getter interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

func readVersion(ctx context.Context, g getter, date string) (string, error) {
	vals, err := g.MGet(ctx, versionAll, versionKey(date)).Result()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v.%v", orZero(vals[0]), orZero(vals[1])), nil
}

func orZero(v any) any {
	if v == nil {
		return "0"
	}
	return v
}

// Set writes key only if the date's version still equals version.
func (c *RedisSlotCache) Set(ctx context.Context, key SlotKey, version string, slots []domain.TimeSlot) error {
	if slots == nil {
		slots = []domain.TimeSlot{}
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx, key.Date)
		if err != nil {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key.String(), data, c.ttl)
			return nil
		})
		return err
	}, versionAll, versionKey(key.Date))

	if errors.Is(err, redis.TxFailedErr) {
		// invalidated while we were writing
		return nil
	}
	return err
}

// InvalidateDate drops every cached entry for date.
func (c *RedisSlotCache) InvalidateDate(ctx context.Context, date string) error {
	if err := c.bump(ctx, versionKey(date)); err != nil {
		return err
	}
	return c.deleteMatching(ctx, keyPrefix+date+":*")
}

func (c *RedisSlotCache) InvalidateAll(ctx context.Context) error {
	if err := c.bump(ctx, versionAll); err != nil {
		return err
	}
	return c.deleteMatching(ctx, keyPrefix+"*")
}

func (c *RedisSlotCache) bump(ctx context.Context, key string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, versionTTL)
		return nil
	})
	return err
}

func (c *RedisSlotCache) deleteMatching(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Nop never hits. Used when no Redis address is configured.
type Nop struct{}

var _ SlotCache = Nop{}

func (Nop) Get(context.Context, SlotKey) ([]domain.TimeSlot, bool, error) { return nil, false, nil }
func (Nop) Version(context.Context, string) (string, error) { return "", nil }
func (Nop) Set(context.Context, SlotKey, string, []domain.TimeSlot) error { return nil }
func (Nop) InvalidateDate(context.Context, string) error { return nil }
func (Nop) InvalidateAll(context.Context) error { return nil }

// NewClient connects and pings Redis.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}
