// internal/repository/memory/wallet.go
package memory

import (
	"context"

	"daily-broadcast/internal/domain"
	"daily-broadcast/internal/repository"
	"daily-broadcast/internal/util"

	"github.com/shopspring/decimal"
)

// WalletRepository implements repository.WalletRepository on a Store.
type WalletRepository struct {
	store *Store
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(store *Store) repository.WalletRepository {
	return &WalletRepository{store: store}
}

// CreateWalletIfAbsent keeps the first registration of an address.
func (r *WalletRepository) CreateWalletIfAbsent(ctx context.Context, wallet *domain.UserWallet) (*domain.UserWallet, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if existing, ok := r.store.wallets[wallet.WalletAddress]; ok {
		return &existing, false, nil
	}
	r.store.wallets[wallet.WalletAddress] = *wallet
	stored := *wallet
	return &stored, true, nil
}

// GetWallet retrieves a wallet by address.
func (r *WalletRepository) GetWallet(ctx context.Context, walletAddress string) (*domain.UserWallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	w, ok := r.store.wallets[walletAddress]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &w, nil
}

// AddEarnings increases the wallet's total earned.
func (r *WalletRepository) AddEarnings(ctx context.Context, walletAddress string, amount decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	w, ok := r.store.wallets[walletAddress]
	if !ok {
		return util.ErrNotFound
	}
	w.TotalEarned = w.TotalEarned.Add(amount)
	r.store.wallets[walletAddress] = w
	return nil
}
