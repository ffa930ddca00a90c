// internal/repository/ad_view_repo.go
package repository

import (
	"context"

	"daily-broadcast/internal/domain"
)

// AdViewRepository defines the interface for ad view data operations.
type AdViewRepository interface {
	// UpsertView stores view, overwriting any view with the same composite key.
	UpsertView(ctx context.Context, view *domain.AdView) error
	// GetView retrieves the view for a composite key. Returns util.ErrNotFound when absent.
	GetView(ctx context.Context, key domain.ViewKey) (*domain.AdView, error)
	// MarkClaimed sets claimed=true and reports whether the flag changed.
	MarkClaimed(ctx context.Context, key domain.ViewKey) (bool, error)
	// ListViewsByBroadcast returns all views of a broadcast ordered by viewedAt.
	ListViewsByBroadcast(ctx context.Context, broadcastID int64) ([]domain.AdView, error)
	// ListViewsByWallet returns all views of a wallet ordered by viewedAt.
	ListViewsByWallet(ctx context.Context, walletAddress string) ([]domain.AdView, error)
}
