// internal/service/broadcast_service.go
package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"daily-broadcast/internal/clock"
	"daily-broadcast/internal/domain"
	"daily-broadcast/internal/metrics"
	"daily-broadcast/internal/repository"
	"daily-broadcast/internal/util"
)

// BroadcastInput carries the administrator-supplied fields of a broadcast.
// A nil AdPayment selects domain.DefaultAdPayment.
type BroadcastInput struct {
	VideoURL      string
	BroadcastTime string
	VideoTitle    string
	AdPayment     *decimal.Decimal
}

// BroadcastService defines the interface for broadcast scheduling.
type BroadcastService interface {
	// Today returns the current calendar date (YYYY-MM-DD) in the service's location.
	Today() string
	// SetBroadcast validates input and creates or replaces the broadcast of date.
	SetBroadcast(ctx context.Context, date string, input BroadcastInput) (*domain.Broadcast, error)
	// GetBroadcastForDate returns util.ErrBroadcastNotFound when date has no broadcast.
	GetBroadcastForDate(ctx context.Context, date string) (*domain.Broadcast, error)
	// GetCurrentBroadcast is GetBroadcastForDate(Today()).
	GetCurrentBroadcast(ctx context.Context) (*domain.Broadcast, error)
	GetBroadcastByID(ctx context.Context, id int64) (*domain.Broadcast, error)
	// GetRevenueSplit splits today's ad payment over estimatedViewers.
	GetRevenueSplit(ctx context.Context, estimatedViewers int64) (*domain.RevenueSplit, error)
}

// broadcastService implements the BroadcastService interface.
type broadcastService struct {
	repo     repository.BroadcastRepository
	clock    clock.Clock
	location *time.Location
	metrics  *metrics.Metrics
}

// NewBroadcastService creates a new instance of BroadcastService. "Today" is
// the calendar date of clk's reading in loc (process local time when nil).
func NewBroadcastService(repo repository.BroadcastRepository, clk clock.Clock, loc *time.Location, m *metrics.Metrics) BroadcastService {
	if loc == nil {
		loc = time.Local
	}
	return &broadcastService{repo: repo, clock: clk, location: loc, metrics: m}
}

func (s *broadcastService) Today() string {
	return domain.DateOf(s.clock.Now(), s.location)
}

// SetBroadcast overwrites whatever the date held before; nothing is merged.
// A read-back returns exactly the supplied fields.
func (s *broadcastService) SetBroadcast(ctx context.Context, date string, input BroadcastInput) (*domain.Broadcast, error) {
	if err := ValidateBroadcast(date, input); err != nil {
		return nil, err
	}

	payment := domain.DefaultAdPayment
	if input.AdPayment != nil {
		payment = *input.AdPayment
	}
	// Fields are stored as supplied; surrounding blanks only matter to validation.
	broadcast := domain.NewBroadcast(date, input.VideoURL, input.BroadcastTime, input.VideoTitle, payment)

	if err := s.repo.SetBroadcast(ctx, broadcast); err != nil {
		return nil, fmt.Errorf("set broadcast: failed to store broadcast for %s: %w", date, err)
	}
	s.metrics.BroadcastWritten()
	return broadcast, nil
}

func (s *broadcastService) GetBroadcastForDate(ctx context.Context, date string) (*domain.Broadcast, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		ve := &util.ValidationError{}
		ve.Add("date", "must be a YYYY-MM-DD calendar date")
		return nil, ve
	}
	broadcast, err := s.repo.GetBroadcastByDate(ctx, date)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrBroadcastNotFound
		}
		return nil, fmt.Errorf("get broadcast: failed to load broadcast for %s: %w", date, err)
	}
	return broadcast, nil
}

func (s *broadcastService) GetCurrentBroadcast(ctx context.Context) (*domain.Broadcast, error) {
	return s.GetBroadcastForDate(ctx, s.Today())
}

func (s *broadcastService) GetBroadcastByID(ctx context.Context, id int64) (*domain.Broadcast, error) {
	broadcast, err := s.repo.GetBroadcastByID(ctx, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrBroadcastNotFound
		}
		return nil, fmt.Errorf("get broadcast: failed to load broadcast %d: %w", id, err)
	}
	return broadcast, nil
}

func (s *broadcastService) GetRevenueSplit(ctx context.Context, estimatedViewers int64) (*domain.RevenueSplit, error) {
	if estimatedViewers < 0 {
		ve := &util.ValidationError{}
		ve.Add("viewers", "must not be negative")
		return nil, ve
	}
	broadcast, err := s.GetCurrentBroadcast(ctx)
	if err != nil {
		return nil, err
	}
	split := domain.SplitRevenue(broadcast.AdPayment, estimatedViewers)
	return &split, nil
}

// ValidateBroadcast checks every field of a broadcast write and reports all
// offending fields at once.
func ValidateBroadcast(date string, input BroadcastInput) error {
	ve := &util.ValidationError{}

	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		ve.Add("date", "must be a YYYY-MM-DD calendar date")
	}

	videoURL := strings.TrimSpace(input.VideoURL)
	if videoURL == "" {
		ve.Add("videoUrl", "is required")
	} else if !isAbsoluteURL(videoURL) {
		ve.Add("videoUrl", "must be an absolute URL")
	}

	if input.BroadcastTime == "" {
		ve.Add("broadcastTime", "is required")
	} else if _, _, err := domain.ParseBroadcastTime(input.BroadcastTime); err != nil {
		ve.Add("broadcastTime", "must be in HH:MM format")
	}

	if strings.TrimSpace(input.VideoTitle) == "" {
		ve.Add("videoTitle", "is required")
	}

	if input.AdPayment != nil && !input.AdPayment.IsPositive() {
		ve.Add("adPayment", "must be a positive number")
	}

	return ve.Err()
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
