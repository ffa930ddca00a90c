// internal/domain/ad_view.go
package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AdView records one wallet having watched one broadcast.
// (BroadcastID, WalletAddress) is the composite key.
type AdView struct {
	BroadcastID   int64           `db:"broadcast_id" json:"broadcastId"`
	WalletAddress string          `db:"wallet_address" json:"walletAddress"`
	ViewedAt      time.Time       `db:"viewed_at" json:"viewedAt"`
	RewardAmount  decimal.Decimal `db:"reward_amount" json:"rewardAmount"`
	Claimed       bool            `db:"claimed" json:"claimed"`
}

// ViewKey is the composite key of an AdView.
type ViewKey struct {
	BroadcastID   int64
	WalletAddress string
}

// Key returns the composite key of v.
func (v *AdView) Key() ViewKey {
	return ViewKey{BroadcastID: v.BroadcastID, WalletAddress: v.WalletAddress}
}

// NewAdView creates a new AdView instance.
func NewAdView(broadcastID int64, walletAddress string, rewardAmount decimal.Decimal, claimed bool, viewedAt time.Time) *AdView {
	return &AdView{
		BroadcastID:   broadcastID,
		WalletAddress: walletAddress,
		ViewedAt:      viewedAt.UTC(),
		RewardAmount:  rewardAmount,
		Claimed:       claimed,
	}
}

// SortViews orders views by ViewedAt ascending, then by BroadcastID and
// WalletAddress so equal timestamps still sort deterministically.
func SortViews(views []AdView) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if !a.ViewedAt.Equal(b.ViewedAt) {
			return a.ViewedAt.Before(b.ViewedAt)
		}
		if a.BroadcastID != b.BroadcastID {
			return a.BroadcastID < b.BroadcastID
		}
		return a.WalletAddress < b.WalletAddress
	})
}
