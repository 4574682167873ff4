package booking

import "sync"

// roomLocks hands out one mutex per room id. Holding the room's mutex across
// the conflict check and the persist step closes the check-then-act race:
// two concurrent bookings for the same room serialize, and the second one
// sees the first one's row when it re-reads the store.
//
// Locks are never removed; a deployment has a bounded set of rooms and an
// idle mutex costs a few words.
type roomLocks struct {
	mu sync.Mutex
	m  map[uint64]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{m: make(map[uint64]*sync.Mutex)}
}

// forRoom returns the mutex guarding the given room, creating it on first use.
func (l *roomLocks) forRoom(roomID uint64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if mu, ok := l.m[roomID]; ok {
		return mu
	}
	mu := new(sync.Mutex)
	l.m[roomID] = mu
	return mu
}
