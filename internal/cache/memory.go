package cache

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
)

// MemoryCache is a process-local ReservationLists implementation used when
// no redis client is configured and as a drop-in fake in tests. Semantics
// match RedisCache: short TTL, explicit invalidation on mutation.
type MemoryCache struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]memoryEntry
	now func() time.Time
}

type memoryEntry struct {
	items     []model.Reservation
	expiresAt time.Time
}

// NewMemory builds a MemoryCache. ttl <= 0 selects DefaultTTL.
func NewMemory(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{ttl: ttl, m: make(map[string]memoryEntry), now: time.Now}
}

// Get returns the cached list for (scope, id) and whether it was present and
// unexpired.
func (c *MemoryCache) Get(_ context.Context, scope Scope, id uint64) ([]model.Reservation, bool) {
	c.mu.RLock()
	e, ok := c.m[key(scope, id)]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.items, true
}

// Set stores a list under (scope, id).
func (c *MemoryCache) Set(_ context.Context, scope Scope, id uint64, items []model.Reservation) {
	c.mu.Lock()
	c.m[key(scope, id)] = memoryEntry{items: items, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// InvalidateReservations drops the user, room and company namespaces in one
// critical section so no reader can observe a partially invalidated set.
func (c *MemoryCache) InvalidateReservations(_ context.Context, userID, roomID, companyID uint64) {
	c.mu.Lock()
	delete(c.m, key(ScopeUser, userID))
	delete(c.m, key(ScopeRoom, roomID))
	delete(c.m, key(ScopeCompany, companyID))
	c.mu.Unlock()
}
