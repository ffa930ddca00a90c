// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// UserWallet represents a viewer's registered wallet address.
type UserWallet struct {
	WalletAddress string          `db:"wallet_address" json:"walletAddress"` // Unique key
	UserID        string          `db:"user_id" json:"userId"`               // Opaque session identifier
	ConnectedAt   time.Time       `db:"connected_at" json:"connectedAt"`     // First connect time
	TotalEarned   decimal.Decimal `db:"total_earned" json:"totalEarned"`     // Sum of claimed rewards
}

// NewUserWallet creates a new UserWallet instance.
func NewUserWallet(walletAddress, userID string, connectedAt time.Time) *UserWallet {
	return &UserWallet{
		WalletAddress: walletAddress,
		UserID:        userID,
		ConnectedAt:   connectedAt.UTC(),
		TotalEarned:   decimal.Zero, // Initialize earnings to 0
	}
}
