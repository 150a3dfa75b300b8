package service

import (
	"sync"
	"time"

	"serene/internal/modules/session/domain"
)

// Countdown is a one-second tick counter. Every Start, Pause, Resume and
// Cancel bumps the generation so ticks scheduled earlier are ignored.
type Countdown struct {
	mu         sync.Mutex
	remaining  time.Duration
	active     bool
	running    bool
	generation uint64
}

func NewCountdown() *Countdown {
	return &Countdown{}
}

// Start begins a new stream of length d, replacing any previous one.
func (c *Countdown) Start(d time.Duration) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.generation++
	c.remaining = d
	c.active = d > 0
	c.running = c.active
	return c.generation
}

// Pause keeps the remaining time but stops counting.
func (c *Countdown) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	c.generation++
}

// Resume continues a paused stream under a fresh generation.
func (c *Countdown) Resume() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active || c.running {
		return c.generation, false
	}
	c.running = true
	c.generation++
	return c.generation, true
}

// Tick counts one second for the given generation. ok is false when the
// tick is stale or the countdown is not running; finished is true on the
// tick that reaches zero, after which the stream is inactive.
func (c *Countdown) Tick(generation uint64) (remaining time.Duration, finished bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || generation != c.generation {
		return c.remaining, false, false
	}
	c.remaining -= domain.TickInterval
	if c.remaining <= 0 {
		c.remaining = 0
		c.active = false
		c.running = false
		return 0, true, true
	}
	return c.remaining, false, true
}

// Cancel ends the stream without completing it.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.remaining = 0
	c.active = false
	c.running = false
}

func (c *Countdown) State() domain.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Timer{
		Remaining:  c.remaining,
		Active:     c.active,
		Running:    c.running,
		Generation: c.generation,
	}
}
