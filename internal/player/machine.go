// internal/player/machine.go
package player

import (
	"log/slog"
	"sync"
	"time"

	"daily-broadcast/internal/clock"
	"daily-broadcast/internal/domain"
)

// State is the presentation state of the daily broadcast on a viewer.
type State string

const (
	StateNone    State = "none"    // nothing scheduled today
	StateWaiting State = "waiting" // scheduled, start time not reached
	StatePlaying State = "playing"
	StateEnded   State = "ended"
)

// Machine tracks the viewer state of today's broadcast. It is safe for
// concurrent use.
type Machine struct {
	mu        sync.Mutex
	clock     clock.Clock
	logger    *slog.Logger
	state     State
	broadcast *domain.Broadcast
	target    time.Time
}

// NewMachine creates a Machine in StateNone.
func NewMachine(clk clock.Clock, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{clock: clk, logger: logger, state: StateNone}
}

// Observe feeds the latest fetch of today's broadcast into the machine. A nil
// broadcast resets to StateNone. A broadcast not seen before is classified
// against the clock: waiting when its start is still ahead, ended otherwise.
// Observing the same broadcast again keeps the current state.
func (m *Machine) Observe(b *domain.Broadcast) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b == nil {
		m.setLocked(StateNone)
		m.broadcast = nil
		m.target = time.Time{}
		return m.state
	}
	if m.broadcast != nil && m.broadcast.ID == b.ID && m.broadcast.Date == b.Date {
		return m.state
	}

	now := m.clock.Now()
	target, err := b.ScheduledAt(now)
	if err != nil {
		m.logger.Warn("Ignoring broadcast with unreadable time", "id", b.ID, "broadcastTime", b.BroadcastTime, "error", err)
		return m.state
	}

	cp := *b
	m.broadcast = &cp
	m.target = target
	if now.Before(target) {
		m.setLocked(StateWaiting)
	} else {
		m.setLocked(StateEnded)
	}
	return m.state
}

// CountdownComplete moves waiting to playing.
func (m *Machine) CountdownComplete() State {
	return m.transition(StateWaiting, StatePlaying)
}

// Start begins playback before the countdown has elapsed.
func (m *Machine) Start() State {
	return m.transition(StateWaiting, StatePlaying)
}

// PlaybackEnded moves playing to ended.
func (m *Machine) PlaybackEnded() State {
	return m.transition(StatePlaying, StateEnded)
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Broadcast returns a copy of the tracked broadcast, or nil.
func (m *Machine) Broadcast() *domain.Broadcast {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.broadcast == nil {
		return nil
	}
	cp := *m.broadcast
	return &cp
}

// Target returns the start instant of the tracked broadcast.
func (m *Machine) Target() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target
}

func (m *Machine) transition(from, to State) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == from {
		m.setLocked(to)
	}
	return m.state
}

func (m *Machine) setLocked(s State) {
	if m.state == s {
		return
	}
	attrs := []any{"from", m.state, "to", s}
	if m.broadcast != nil {
		attrs = append(attrs, "broadcastId", m.broadcast.ID)
	}
	m.logger.Info("Player state changed", attrs...)
	m.state = s
}
