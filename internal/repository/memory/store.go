// internal/repository/memory/store.go
package memory

import (
	"sync"

	"daily-broadcast/internal/domain"
)

// Store is the process-wide in-memory record store. It holds at most one
// broadcast per date, wallets keyed by address and ad views keyed by
// (broadcastID, walletAddress). Nothing is evicted or persisted.
//
// A single Store is created at startup and shared by the repositories built
// from it; each write replaces one keyed slot under the lock.
type Store struct {
	mu sync.RWMutex

	broadcasts map[string]domain.Broadcast // keyed by date
	wallets    map[string]domain.UserWallet
	views      map[domain.ViewKey]domain.AdView
	lastID     int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		broadcasts: make(map[string]domain.Broadcast),
		wallets:    make(map[string]domain.UserWallet),
		views:      make(map[domain.ViewKey]domain.AdView),
	}
}

// Reset clears all state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcasts = make(map[string]domain.Broadcast)
	s.wallets = make(map[string]domain.UserWallet)
	s.views = make(map[domain.ViewKey]domain.AdView)
	s.lastID = 0
}

// Counts returns the number of records held per collection.
func (s *Store) Counts() (broadcasts, wallets, views int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.broadcasts), len(s.wallets), len(s.views)
}
