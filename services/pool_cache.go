package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Jose888-pixe/Web-hotel-sub000/utils"
)

// PoolCache caches per-pool occupied-date lists in Redis. The cache is
// strictly optional: a nil PoolCache (or nil client) degrades to computing
// every request. Writers that change occupancy facts must call Invalidate.
type PoolCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPoolCache(rdb *redis.Client, ttl time.Duration) *PoolCache {
	if rdb == nil {
		return nil
	}
	return &PoolCache{rdb: rdb, ttl: ttl}
}

// PoolKey builds the cache key for a (type, name) pool.
func PoolKey(roomType, name string) string {
	return fmt.Sprintf("pool:%s:%s:occupied", roomType, name)
}

func (c *PoolCache) GetOccupiedDates(ctx context.Context, key string) ([]time.Time, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logrus.Warnf("pool cache get %s: %v", key, err)
		}
		return nil, false
	}

	var days []string
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		logrus.Warnf("pool cache decode %s: %v", key, err)
		return nil, false
	}
	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		t, err := utils.ParseDate(d)
		if err != nil {
			return nil, false
		}
		dates = append(dates, t)
	}
	return dates, true
}

func (c *PoolCache) SetOccupiedDates(ctx context.Context, key string, dates []time.Time) {
	if c == nil || c.rdb == nil {
		return
	}
	days := make([]string, 0, len(dates))
	for _, d := range dates {
		days = append(days, d.Format(utils.DateLayout))
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logrus.Warnf("pool cache set %s: %v", key, err)
	}
}

// Invalidate drops the cached list for a pool after any write that changes
// its occupancy facts (new reservation, transition, maintenance change).
func (c *PoolCache) Invalidate(ctx context.Context, key string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		logrus.Warnf("pool cache invalidate %s: %v", key, err)
	}
}
