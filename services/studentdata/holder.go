package studentdata

import (
	"sync"
	"time"

	"academia-backend/lib/scrapers/academia"
)

// Snapshot is the assembled schedule state the notifier daemon reads.
type Snapshot struct {
	Grid    []academia.DayOrderRow
	Mapping academia.SlotMapping
	Months  []academia.CalendarMonth
}

// SnapshotHolder hands the latest schedule snapshot from the artifact
// flows to the notifier without either side reaching into the other.
type SnapshotHolder struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	updatedAt time.Time
	hasData   bool
}

func NewSnapshotHolder() *SnapshotHolder {
	return &SnapshotHolder{}
}

func (h *SnapshotHolder) Set(snapshot Snapshot, now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshot = snapshot
	h.updatedAt = now
	h.hasData = true
}

func (h *SnapshotHolder) Get() (Snapshot, time.Time, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshot, h.updatedAt, h.hasData
}

func (h *SnapshotHolder) HasData() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.hasData
}

func (h *SnapshotHolder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshot = Snapshot{}
	h.updatedAt = time.Time{}
	h.hasData = false
}
