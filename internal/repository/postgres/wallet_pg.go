// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"daily-broadcast/internal/domain"
	"daily-broadcast/internal/repository"
	"daily-broadcast/internal/util"
)

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct {
	q repository.DBExecutor
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(q repository.DBExecutor) repository.WalletRepository {
	return &WalletRepository{q: q}
}

// CreateWalletIfAbsent inserts the wallet unless the address exists, then reads back the stored row.
func (r *WalletRepository) CreateWalletIfAbsent(ctx context.Context, wallet *domain.UserWallet) (*domain.UserWallet, bool, error) {
	query := `INSERT INTO user_wallets (wallet_address, user_id, connected_at, total_earned)
	          VALUES ($1, $2, $3, $4) ON CONFLICT (wallet_address) DO NOTHING`
	result, err := r.q.ExecContext(ctx, query, wallet.WalletAddress, wallet.UserID, wallet.ConnectedAt, wallet.TotalEarned)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create wallet %s: %w", wallet.WalletAddress, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get rows affected after creating wallet %s: %w", wallet.WalletAddress, err)
	}

	stored, err := r.GetWallet(ctx, wallet.WalletAddress)
	if err != nil {
		return nil, false, err
	}
	return stored, rowsAffected == 1, nil
}

// GetWallet retrieves a wallet by address.
func (r *WalletRepository) GetWallet(ctx context.Context, walletAddress string) (*domain.UserWallet, error) {
	var wallet domain.UserWallet
	query := `SELECT wallet_address, user_id, connected_at, total_earned FROM user_wallets WHERE wallet_address = $1`
	if err := r.q.GetContext(ctx, &wallet, query, walletAddress); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet %s: %w", walletAddress, err)
	}
	wallet.ConnectedAt = wallet.ConnectedAt.UTC()
	return &wallet, nil
}

// AddEarnings increases a wallet's total earned.
func (r *WalletRepository) AddEarnings(ctx context.Context, walletAddress string, amount decimal.Decimal) error {
	query := `UPDATE user_wallets SET total_earned = total_earned + $1 WHERE wallet_address = $2`
	result, err := r.q.ExecContext(ctx, query, amount, walletAddress)
	if err != nil {
		return fmt.Errorf("failed to add earnings for wallet %s: %w", walletAddress, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after adding earnings for wallet %s: %w", walletAddress, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
