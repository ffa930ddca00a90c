// internal/service/wallet_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"daily-broadcast/internal/clock"
	"daily-broadcast/internal/domain"
	"daily-broadcast/internal/metrics"
	"daily-broadcast/internal/repository"
	"daily-broadcast/internal/util"
)

// ViewInput carries the fields of an ad view write. A nil Claimed records false.
type ViewInput struct {
	BroadcastID   int64
	WalletAddress string
	RewardAmount  decimal.Decimal
	Claimed       *bool
}

// WalletService defines the interface for wallet registration and ad view recording.
type WalletService interface {
	// RegisterWallet returns the existing record unchanged when the address is known.
	RegisterWallet(ctx context.Context, walletAddress, userID string) (*domain.UserWallet, error)
	GetWallet(ctx context.Context, walletAddress string) (*domain.UserWallet, error)
	// RecordView upserts the view for (broadcastID, walletAddress).
	RecordView(ctx context.Context, input ViewInput) (*domain.AdView, error)
	// ClaimView marks a view claimed and credits the wallet on the first claim.
	ClaimView(ctx context.Context, broadcastID int64, walletAddress string) (*domain.AdView, error)
	GetViewsForBroadcast(ctx context.Context, broadcastID int64) ([]domain.AdView, error)
	GetViewsForWallet(ctx context.Context, walletAddress string) ([]domain.AdView, error)
}

// walletService implements the WalletService interface.
type walletService struct {
	walletRepo repository.WalletRepository
	viewRepo   repository.AdViewRepository
	clock      clock.Clock
	metrics    *metrics.Metrics
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(walletRepo repository.WalletRepository, viewRepo repository.AdViewRepository, clk clock.Clock, m *metrics.Metrics) WalletService {
	return &walletService{
		walletRepo: walletRepo,
		viewRepo:   viewRepo,
		clock:      clk,
		metrics:    m,
	}
}

func (s *walletService) RegisterWallet(ctx context.Context, walletAddress, userID string) (*domain.UserWallet, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	ve := &util.ValidationError{}
	if walletAddress == "" {
		ve.Add("walletAddress", "is required")
	}
	if strings.TrimSpace(userID) == "" {
		ve.Add("userId", "is required")
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	wallet, created, err := s.walletRepo.CreateWalletIfAbsent(ctx, domain.NewUserWallet(walletAddress, userID, s.clock.Now()))
	if err != nil {
		return nil, fmt.Errorf("register wallet: failed to store wallet %s: %w", walletAddress, err)
	}
	s.metrics.WalletRegistered(created)
	return wallet, nil
}

func (s *walletService) GetWallet(ctx context.Context, walletAddress string) (*domain.UserWallet, error) {
	wallet, err := s.walletRepo.GetWallet(ctx, walletAddress)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("get wallet: failed to load wallet %s: %w", walletAddress, err)
	}
	return wallet, nil
}

func (s *walletService) RecordView(ctx context.Context, input ViewInput) (*domain.AdView, error) {
	input.WalletAddress = strings.TrimSpace(input.WalletAddress)
	ve := &util.ValidationError{}
	if input.BroadcastID <= 0 {
		ve.Add("broadcastId", "must be a positive broadcast id")
	}
	if input.WalletAddress == "" {
		ve.Add("walletAddress", "is required")
	}
	if input.RewardAmount.IsNegative() {
		ve.Add("rewardAmount", "must not be negative")
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	claimed := false
	if input.Claimed != nil {
		claimed = *input.Claimed
	}
	view := domain.NewAdView(input.BroadcastID, input.WalletAddress, input.RewardAmount, claimed, s.clock.Now())
	if err := s.viewRepo.UpsertView(ctx, view); err != nil {
		return nil, fmt.Errorf("record view: failed to store view (%d, %s): %w", input.BroadcastID, input.WalletAddress, err)
	}
	s.metrics.ViewRecorded()
	return view, nil
}

func (s *walletService) ClaimView(ctx context.Context, broadcastID int64, walletAddress string) (*domain.AdView, error) {
	key := domain.ViewKey{BroadcastID: broadcastID, WalletAddress: strings.TrimSpace(walletAddress)}
	ve := &util.ValidationError{}
	if key.BroadcastID <= 0 {
		ve.Add("broadcastId", "must be a positive broadcast id")
	}
	if key.WalletAddress == "" {
		ve.Add("walletAddress", "is required")
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	changed, err := s.viewRepo.MarkClaimed(ctx, key)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrViewNotFound
		}
		return nil, fmt.Errorf("claim view: failed to mark view (%d, %s): %w", key.BroadcastID, key.WalletAddress, err)
	}

	view, err := s.viewRepo.GetView(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("claim view: failed to re-fetch view (%d, %s): %w", key.BroadcastID, key.WalletAddress, err)
	}

	if changed {
		s.metrics.ViewClaimed()
		// Views may be recorded for wallets that never connected; those have no total to credit.
		err := s.walletRepo.AddEarnings(ctx, key.WalletAddress, view.RewardAmount)
		if err != nil && !util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("claim view: failed to credit wallet %s: %w", key.WalletAddress, err)
		}
	}
	return view, nil
}

func (s *walletService) GetViewsForBroadcast(ctx context.Context, broadcastID int64) ([]domain.AdView, error) {
	views, err := s.viewRepo.ListViewsByBroadcast(ctx, broadcastID)
	if err != nil {
		return nil, fmt.Errorf("list views: failed to load views for broadcast %d: %w", broadcastID, err)
	}
	return views, nil
}

func (s *walletService) GetViewsForWallet(ctx context.Context, walletAddress string) ([]domain.AdView, error) {
	views, err := s.viewRepo.ListViewsByWallet(ctx, walletAddress)
	if err != nil {
		return nil, fmt.Errorf("list views: failed to load views for wallet %s: %w", walletAddress, err)
	}
	return views, nil
}
