// internal/player/countdown.go
package player

import (
	"context"
	"fmt"
	"time"

	"daily-broadcast/internal/clock"
	"daily-broadcast/internal/domain"
)

// DefaultPeriod is how often a Countdown recomputes the remaining time.
const DefaultPeriod = time.Second

// Remaining is a countdown reading split for display.
type Remaining struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// RemainingUntil returns the whole time left from now to target, floored to
// the second and clamped at zero.
func RemainingUntil(now, target time.Time) Remaining {
	d := target.Sub(now)
	if d <= 0 {
		return Remaining{}
	}
	total := int(d / time.Second)
	return Remaining{
		Hours:   total / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// IsZero reports whether no time is left.
func (r Remaining) IsZero() bool {
	return r.Hours == 0 && r.Minutes == 0 && r.Seconds == 0
}

func (r Remaining) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", r.Hours, r.Minutes, r.Seconds)
}

// Countdown recomputes the time left until Target every Period.
type Countdown struct {
	Clock  clock.Clock
	Target time.Time
	Period time.Duration // DefaultPeriod when zero
}

// NewCountdown creates a Countdown to target with DefaultPeriod.
func NewCountdown(clk clock.Clock, target time.Time) *Countdown {
	return &Countdown{Clock: clk, Target: target, Period: DefaultPeriod}
}

// Run blocks until the target is reached or ctx is done. onTick, when set,
// receives every reading, including the initial one. Run returns nil exactly
// when the countdown completed and ctx.Err() otherwise.
func (c *Countdown) Run(ctx context.Context, onTick func(Remaining)) error {
	period := c.Period
	if period <= 0 {
		period = DefaultPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		now := c.Clock.Now()
		rem := RemainingUntil(now, c.Target)
		if onTick != nil {
			onTick(rem)
		}
		if !now.Before(c.Target) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// NextOccurrence returns the next instant at or after now whose wall-clock
// time is hhmm: today when still ahead, otherwise the same time tomorrow.
func NextOccurrence(now time.Time, hhmm string) (time.Time, error) {
	b := domain.Broadcast{BroadcastTime: hhmm}
	at, err := b.ScheduledAt(now)
	if err != nil {
		return time.Time{}, err
	}
	if at.Before(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at, nil
}
