package product

import (
	"context"
	"sync"
	"time"
)

// DefaultHistoryLimit is how many trending snapshots a history listing returns.
const DefaultHistoryLimit = 20

// Snapshot records which products were trending at a point in time.
type Snapshot struct {
	ID         int64     `json:"id"`
	ProductIDs []int64   `json:"productIds"`
	Limit      int       `json:"limit"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewSnapshot captures the IDs of a trending list, in rank order.
func NewSnapshot(trending []Product, limit int, at time.Time) Snapshot {
	ids := make([]int64, 0, len(trending))
	for _, p := range trending {
		ids = append(ids, int64(p.ID))
	}
	return Snapshot{ProductIDs: ids, Limit: limit, CreatedAt: at.UTC()}
}

type SnapshotRepository interface {
	Save(ctx context.Context, s Snapshot) (Snapshot, error)
	// List returns the most recent snapshots first.
	List(ctx context.Context, limit int) ([]Snapshot, error)
}

// InMemorySnapshotRepository keeps snapshots in process; used when no
// database is configured and in tests.
type InMemorySnapshotRepository struct {
	mu      sync.RWMutex
	storage []Snapshot
	nextID  int64
}

func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{nextID: 1}
}

func (r *InMemorySnapshotRepository) Save(_ context.Context, s Snapshot) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	s.ProductIDs = append([]int64(nil), s.ProductIDs...)
	r.storage = append(r.storage, s)
	return s, nil
}

func (r *InMemorySnapshotRepository) List(_ context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Snapshot, 0, min(limit, len(r.storage)))
	for i := len(r.storage) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.storage[i])
	}
	return out, nil
}
