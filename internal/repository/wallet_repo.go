// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"daily-broadcast/internal/domain"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet registration data operations.
type WalletRepository interface {
	// CreateWalletIfAbsent stores wallet unless its address is already known.
	// It returns the stored record and whether it was newly created.
	CreateWalletIfAbsent(ctx context.Context, wallet *domain.UserWallet) (*domain.UserWallet, bool, error)
	// GetWallet retrieves a wallet by address. Returns util.ErrNotFound when unknown.
	GetWallet(ctx context.Context, walletAddress string) (*domain.UserWallet, error)
	// AddEarnings increases a wallet's total earned by amount.
	AddEarnings(ctx context.Context, walletAddress string, amount decimal.Decimal) error
}
