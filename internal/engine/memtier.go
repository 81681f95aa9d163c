package engine

import "sync"

// MemTier is a bounded FIFO of already-encoded frame bodies — the fast
// path a send uses while the disk tier is fully drained and there's room.
// It carries its own lock so it stays safe to exercise directly in tests;
// the coordinator additionally serializes access to it under its own lock,
// which is harmless since the two locks never nest the other way round.
type MemTier struct {
	mu       sync.Mutex
	capacity uint32
	items    [][]byte
}

// NewMemTier builds a memory tier holding up to capacity frames.
func NewMemTier(capacity uint32) *MemTier {
	if capacity == 0 {
		capacity = 1
	}
	return &MemTier{capacity: capacity}
}

// TryPush appends body if there is room, preserving insertion order.
func (m *MemTier) TryPush(body []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if uint32(len(m.items)) >= m.capacity {
		return false
	}
	m.items = append(m.items, body)
	return true
}

// TryPop removes and returns the oldest body, if any.
func (m *MemTier) TryPop() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		return nil, false
	}
	body := m.items[0]
	m.items = m.items[1:]
	return body, true
}

// Len reports how many frames are currently resident.
func (m *MemTier) Len() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return uint32(len(m.items))
}

// Capacity returns the configured maximum.
func (m *MemTier) Capacity() uint32 {
	return m.capacity
}
