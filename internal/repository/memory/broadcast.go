// internal/repository/memory/broadcast.go
package memory

import (
	"context"
	"fmt"

	"daily-broadcast/internal/domain"
	"daily-broadcast/internal/repository"
	"daily-broadcast/internal/util"
)

// BroadcastRepository implements repository.BroadcastRepository on a Store.
type BroadcastRepository struct {
	store *Store
}

// NewBroadcastRepository creates a new BroadcastRepository.
func NewBroadcastRepository(store *Store) repository.BroadcastRepository {
	return &BroadcastRepository{store: store}
}

// SetBroadcast replaces the broadcast stored under broadcast.Date and stamps a new ID on it.
func (r *BroadcastRepository) SetBroadcast(ctx context.Context, broadcast *domain.Broadcast) error {
	if broadcast.Date == "" {
		return fmt.Errorf("failed to set broadcast: empty date")
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.lastID++
	broadcast.ID = r.store.lastID
	r.store.broadcasts[broadcast.Date] = *broadcast
	return nil
}

// GetBroadcastByDate retrieves the broadcast for a date.
func (r *BroadcastRepository) GetBroadcastByDate(ctx context.Context, date string) (*domain.Broadcast, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.broadcasts[date]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &b, nil
}

// GetBroadcastByID scans for the broadcast currently holding id.
func (r *BroadcastRepository) GetBroadcastByID(ctx context.Context, id int64) (*domain.Broadcast, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, b := range r.store.broadcasts {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, util.ErrNotFound
}
