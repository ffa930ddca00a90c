// internal/repository/broadcast_repo.go
package repository

import (
	"context"

	"daily-broadcast/internal/domain"
)

// BroadcastRepository defines the interface for broadcast data operations.
type BroadcastRepository interface {
	// SetBroadcast stores the broadcast under its date, fully replacing any
	// existing one, and assigns it a fresh ID.
	SetBroadcast(ctx context.Context, broadcast *domain.Broadcast) error
	// GetBroadcastByDate retrieves the broadcast for a YYYY-MM-DD date.
	// Returns util.ErrNotFound when the date has none.
	GetBroadcastByDate(ctx context.Context, date string) (*domain.Broadcast, error)
	// GetBroadcastByID retrieves a broadcast by its surrogate ID.
	GetBroadcastByID(ctx context.Context, id int64) (*domain.Broadcast, error)
}
