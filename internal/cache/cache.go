// Package cache implements the short-lived read-through cache for
// reservation lists. Entries are keyed by (scope, id) — the user, room and
// company views a reservation can appear in — and correctness does not rest
// on the TTL: every mutating call in the booking service invalidates all
// three scopes synchronously before its response is returned. Conflict
// arbitration never reads through this cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/room-reservation/internal/model"
)

// Scope names a cache namespace. A reservation mutation touches up to three
// scopes and all of them are invalidated together.
type Scope string

const (
	ScopeUser    Scope = "user"
	ScopeRoom    Scope = "room"
	ScopeCompany Scope = "company"
)

// ReservationLists is the read-through surface handlers use for display
// queries, plus the invalidation hook the booking service drives. Both the
// redis and the in-memory implementation satisfy it.
type ReservationLists interface {
	Get(ctx context.Context, scope Scope, id uint64) ([]model.Reservation, bool)
	Set(ctx context.Context, scope Scope, id uint64, items []model.Reservation)
	InvalidateReservations(ctx context.Context, userID, roomID, companyID uint64)
}

// DefaultTTL bounds staleness for readers that race an invalidation; the
// cache is correct without it.
const DefaultTTL = 30 * time.Second

// RedisCache stores reservation lists as JSON in redis. A nil client turns
// every operation into a no-op so the application degrades gracefully when
// redis is unreachable at startup (the same convention the redis client
// constructor follows).
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis builds a RedisCache. ttl <= 0 selects DefaultTTL.
func NewRedis(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func key(scope Scope, id uint64) string {
	return fmt.Sprintf("resv:%s:%d", scope, id)
}

// Get returns the cached list for (scope, id) and whether it was present.
func (c *RedisCache) Get(ctx context.Context, scope Scope, id uint64) ([]model.Reservation, bool) {
	if c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key(scope, id)).Bytes()
	if err != nil {
		return nil, false
	}
	var items []model.Reservation
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// Set stores a list under (scope, id). Failures are logged and swallowed;
// a missed cache write only costs a future store round-trip.
func (c *RedisCache) Set(ctx context.Context, scope Scope, id uint64, items []model.Reservation) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		log.Printf("cache: marshal %s:%d failed: %v", scope, id, err)
		return
	}
	if err := c.rdb.SetEx(ctx, key(scope, id), raw, c.ttl).Err(); err != nil {
		log.Printf("cache: set %s:%d failed: %v", scope, id, err)
	}
}

// InvalidateReservations drops every namespace that could contain the
// changed reservation. Errors are logged and swallowed: staleness here is a
// performance bug, not a correctness one, because conflict checking always
// bypasses the cache.
func (c *RedisCache) InvalidateReservations(ctx context.Context, userID, roomID, companyID uint64) {
	if c.rdb == nil {
		return
	}
	keys := []string{
		key(ScopeUser, userID),
		key(ScopeRoom, roomID),
		key(ScopeCompany, companyID),
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache: invalidate %v failed: %v", keys, err)
	}
}
