// internal/repository/postgres/broadcast_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"daily-broadcast/internal/domain"
	"daily-broadcast/internal/repository"
	"daily-broadcast/internal/util"
	"daily-broadcast/pkg/db"
)

const broadcastColumns = `id, date, video_url, broadcast_time, video_title, ad_payment`

// BroadcastRepository implements repository.BroadcastRepository for PostgreSQL.
type BroadcastRepository struct {
	db *sqlx.DB
}

// NewBroadcastRepository creates a new BroadcastRepository.
func NewBroadcastRepository(database *sqlx.DB) repository.BroadcastRepository {
	return &BroadcastRepository{db: database}
}

// SetBroadcast deletes the date's previous row and inserts the new one in a
// single transaction, so the replacement receives a fresh id.
func (r *BroadcastRepository) SetBroadcast(ctx context.Context, broadcast *domain.Broadcast) error {
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM broadcasts WHERE date = $1`, broadcast.Date); err != nil {
			return fmt.Errorf("failed to clear broadcast for %s: %w", broadcast.Date, err)
		}
		query := `INSERT INTO broadcasts (date, video_url, broadcast_time, video_title, ad_payment)
		          VALUES ($1, $2, $3, $4, $5) RETURNING id`
		return tx.QueryRowxContext(ctx, query,
			broadcast.Date,
			broadcast.VideoURL,
			broadcast.BroadcastTime,
			broadcast.VideoTitle,
			broadcast.AdPayment,
		).Scan(&broadcast.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to set broadcast: %w", err)
	}
	return nil
}

// GetBroadcastByDate retrieves the broadcast for a date.
func (r *BroadcastRepository) GetBroadcastByDate(ctx context.Context, date string) (*domain.Broadcast, error) {
	return r.getOne(ctx, `SELECT `+broadcastColumns+` FROM broadcasts WHERE date = $1`, date)
}

// GetBroadcastByID retrieves a broadcast by its ID.
func (r *BroadcastRepository) GetBroadcastByID(ctx context.Context, id int64) (*domain.Broadcast, error) {
	return r.getOne(ctx, `SELECT `+broadcastColumns+` FROM broadcasts WHERE id = $1`, id)
}

func (r *BroadcastRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Broadcast, error) {
	var broadcast domain.Broadcast
	if err := r.db.GetContext(ctx, &broadcast, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get broadcast by %v: %w", arg, err)
	}
	return &broadcast, nil
}
