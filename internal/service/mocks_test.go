// internal/service/mocks_test.go
package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"daily-broadcast/internal/domain"
)

// MockBroadcastRepository is a mock implementation of repository.BroadcastRepository.
type MockBroadcastRepository struct {
	mock.Mock
}

func (m *MockBroadcastRepository) SetBroadcast(ctx context.Context, broadcast *domain.Broadcast) error {
	args := m.Called(ctx, broadcast)
	return args.Error(0)
}

func (m *MockBroadcastRepository) GetBroadcastByDate(ctx context.Context, date string) (*domain.Broadcast, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Broadcast), args.Error(1)
}

func (m *MockBroadcastRepository) GetBroadcastByID(ctx context.Context, id int64) (*domain.Broadcast, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Broadcast), args.Error(1)
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) CreateWalletIfAbsent(ctx context.Context, wallet *domain.UserWallet) (*domain.UserWallet, bool, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.UserWallet), args.Bool(1), args.Error(2)
}

func (m *MockWalletRepository) GetWallet(ctx context.Context, walletAddress string) (*domain.UserWallet, error) {
	args := m.Called(ctx, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWallet), args.Error(1)
}

func (m *MockWalletRepository) AddEarnings(ctx context.Context, walletAddress string, amount decimal.Decimal) error {
	args := m.Called(ctx, walletAddress, amount)
	return args.Error(0)
}

// MockAdViewRepository is a mock implementation of repository.AdViewRepository.
type MockAdViewRepository struct {
	mock.Mock
}

func (m *MockAdViewRepository) UpsertView(ctx context.Context, view *domain.AdView) error {
	args := m.Called(ctx, view)
	return args.Error(0)
}

func (m *MockAdViewRepository) GetView(ctx context.Context, key domain.ViewKey) (*domain.AdView, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdView), args.Error(1)
}

func (m *MockAdViewRepository) MarkClaimed(ctx context.Context, key domain.ViewKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdViewRepository) ListViewsByBroadcast(ctx context.Context, broadcastID int64) ([]domain.AdView, error) {
	args := m.Called(ctx, broadcastID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdView), args.Error(1)
}

func (m *MockAdViewRepository) ListViewsByWallet(ctx context.Context, walletAddress string) ([]domain.AdView, error) {
	args := m.Called(ctx, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdView), args.Error(1)
}
