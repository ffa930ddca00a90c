// Package clock abstracts wall-clock reads so time-of-day logic can be
// exercised with a fake time in tests.
package clock

import (
	"sync"
	"time"
)

// Clock defines an interface for getting the current time.
type Clock interface {
	Now() time.Time
}

// Real implements Clock using the system time in a fixed location.
type Real struct {
	Location *time.Location
}

// Now returns the current time in c.Location (process local time when nil).
func (c Real) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// Fake is a settable Clock for tests, safe for concurrent use.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake creates a Fake clock reading t.
func NewFake(t time.Time) *Fake {
	return &Fake{now: t}
}

// Now returns the fake time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set moves the fake clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
