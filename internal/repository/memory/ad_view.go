// internal/repository/memory/ad_view.go
package memory

import (
	"context"

	"daily-broadcast/internal/domain"
	"daily-broadcast/internal/repository"
	"daily-broadcast/internal/util"
)

// AdViewRepository implements repository.AdViewRepository on a Store.
type AdViewRepository struct {
	store *Store
}

// NewAdViewRepository creates a new AdViewRepository.
func NewAdViewRepository(store *Store) repository.AdViewRepository {
	return &AdViewRepository{store: store}
}

// UpsertView stores view; last write wins per composite key.
func (r *AdViewRepository) UpsertView(ctx context.Context, view *domain.AdView) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.views[view.Key()] = *view
	return nil
}

// GetView retrieves a view by composite key.
func (r *AdViewRepository) GetView(ctx context.Context, key domain.ViewKey) (*domain.AdView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	v, ok := r.store.views[key]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &v, nil
}

// MarkClaimed flips claimed to true.
func (r *AdViewRepository) MarkClaimed(ctx context.Context, key domain.ViewKey) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	v, ok := r.store.views[key]
	if !ok {
		return false, util.ErrNotFound
	}
	if v.Claimed {
		return false, nil
	}
	v.Claimed = true
	r.store.views[key] = v
	return true, nil
}

// ListViewsByBroadcast returns views of one broadcast ordered by viewedAt.
func (r *AdViewRepository) ListViewsByBroadcast(ctx context.Context, broadcastID int64) ([]domain.AdView, error) {
	return r.filter(func(v domain.AdView) bool { return v.BroadcastID == broadcastID }), nil
}

// ListViewsByWallet returns views of one wallet ordered by viewedAt.
func (r *AdViewRepository) ListViewsByWallet(ctx context.Context, walletAddress string) ([]domain.AdView, error) {
	return r.filter(func(v domain.AdView) bool { return v.WalletAddress == walletAddress }), nil
}

func (r *AdViewRepository) filter(keep func(domain.AdView) bool) []domain.AdView {
	r.store.mu.RLock()
	views := []domain.AdView{}
	for _, v := range r.store.views {
		if keep(v) {
			views = append(views, v)
		}
	}
	r.store.mu.RUnlock()

	domain.SortViews(views)
	return views
}
