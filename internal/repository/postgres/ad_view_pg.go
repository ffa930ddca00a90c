// internal/repository/postgres/ad_view_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"daily-broadcast/internal/domain"
	"daily-broadcast/internal/repository"
	"daily-broadcast/internal/util"
)

const adViewColumns = `broadcast_id, wallet_address, viewed_at, reward_amount, claimed`

// AdViewRepository implements repository.AdViewRepository for PostgreSQL.
type AdViewRepository struct {
	q repository.DBExecutor
}

// NewAdViewRepository creates a new AdViewRepository.
func NewAdViewRepository(q repository.DBExecutor) repository.AdViewRepository {
	return &AdViewRepository{q: q}
}

// UpsertView inserts or overwrites the view for its composite key.
func (r *AdViewRepository) UpsertView(ctx context.Context, view *domain.AdView) error {
	query := `INSERT INTO ad_views (` + adViewColumns + `)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (broadcast_id, wallet_address) DO UPDATE
	          SET viewed_at = EXCLUDED.viewed_at, reward_amount = EXCLUDED.reward_amount, claimed = EXCLUDED.claimed`
	_, err := r.q.ExecContext(ctx, query, view.BroadcastID, view.WalletAddress, view.ViewedAt, view.RewardAmount, view.Claimed)
	if err != nil {
		return fmt.Errorf("failed to upsert ad view (%d, %s): %w", view.BroadcastID, view.WalletAddress, err)
	}
	return nil
}

// GetView retrieves a view by composite key.
func (r *AdViewRepository) GetView(ctx context.Context, key domain.ViewKey) (*domain.AdView, error) {
	var view domain.AdView
	query := `SELECT ` + adViewColumns + ` FROM ad_views WHERE broadcast_id = $1 AND wallet_address = $2`
	if err := r.q.GetContext(ctx, &view, query, key.BroadcastID, key.WalletAddress); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ad view (%d, %s): %w", key.BroadcastID, key.WalletAddress, err)
	}
	view.ViewedAt = view.ViewedAt.UTC()
	return &view, nil
}

// MarkClaimed flips claimed to true when it is still false.
func (r *AdViewRepository) MarkClaimed(ctx context.Context, key domain.ViewKey) (bool, error) {
	query := `UPDATE ad_views SET claimed = TRUE WHERE broadcast_id = $1 AND wallet_address = $2 AND NOT claimed`
	result, err := r.q.ExecContext(ctx, query, key.BroadcastID, key.WalletAddress)
	if err != nil {
		return false, fmt.Errorf("failed to claim ad view (%d, %s): %w", key.BroadcastID, key.WalletAddress, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected after claiming ad view: %w", err)
	}
	if rowsAffected == 1 {
		return true, nil
	}
	// Either already claimed or missing.
	if _, err := r.GetView(ctx, key); err != nil {
		return false, err
	}
	return false, nil
}

// ListViewsByBroadcast returns views of one broadcast ordered by viewedAt.
func (r *AdViewRepository) ListViewsByBroadcast(ctx context.Context, broadcastID int64) ([]domain.AdView, error) {
	query := `SELECT ` + adViewColumns + ` FROM ad_views WHERE broadcast_id = $1
	          ORDER BY viewed_at ASC, broadcast_id ASC, wallet_address ASC`
	return r.list(ctx, query, broadcastID)
}

// ListViewsByWallet returns views of one wallet ordered by viewedAt.
func (r *AdViewRepository) ListViewsByWallet(ctx context.Context, walletAddress string) ([]domain.AdView, error) {
	query := `SELECT ` + adViewColumns + ` FROM ad_views WHERE wallet_address = $1
	          ORDER BY viewed_at ASC, broadcast_id ASC, wallet_address ASC`
	return r.list(ctx, query, walletAddress)
}

func (r *AdViewRepository) list(ctx context.Context, query string, arg interface{}) ([]domain.AdView, error) {
	views := []domain.AdView{}
	if err := r.q.SelectContext(ctx, &views, query, arg); err != nil {
		return nil, fmt.Errorf("failed to list ad views by %v: %w", arg, err)
	}
	for i := range views {
		views[i].ViewedAt = views[i].ViewedAt.UTC()
	}
	return views, nil
}
