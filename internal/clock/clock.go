// Package clock implements a two-sided game clock with optional increment.
package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/hailam/chessrules/internal/board"
)

// Clock counts down the remaining time of both players. Only the active
// side's time runs, and only while the clock is running.
type Clock struct {
	mu          sync.Mutex
	initial     time.Duration
	increment   time.Duration
	remaining   [2]time.Duration
	active      board.Color
	running     bool
	lastStarted time.Time

	// Now is the time source; tests replace it.
	Now func() time.Time
}

// New returns a paused clock giving each side initial time and adding
// increment after every move.
func New(initial, increment time.Duration) *Clock {
	return &Clock{
		initial:   initial,
		increment: increment,
		remaining: [2]time.Duration{initial, initial},
		active:    board.White,
		Now:       time.Now,
	}
}

// Initial returns the starting time per side.
func (c *Clock) Initial() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initial
}

// Increment returns the time added per move.
func (c *Clock) Increment() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.increment
}

// Start runs side's clock. It is a no-op when already running.
func (c *Clock) Start(side board.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}
	c.active = side
	c.running = true
	c.lastStarted = c.Now()
}

// Pause stops the clock, charging the elapsed time to the active side.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settle()
	c.running = false
}

// Switch ends the active side's turn: the elapsed time is charged, the
// increment added, and the opponent's clock starts if the clock was running.
func (c *Clock) Switch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settle()
	if c.remaining[c.active] > 0 {
		c.remaining[c.active] += c.increment
	}
	c.active = c.active.Other()
}

// settle moves elapsed time into remaining. The caller holds mu.
func (c *Clock) settle() {
	if !c.running {
		return
	}
	now := c.Now()
	c.remaining[c.active] -= now.Sub(c.lastStarted)
	if c.remaining[c.active] < 0 {
		c.remaining[c.active] = 0
	}
	c.lastStarted = now
}

// Running reports whether time is ticking.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Active returns the side whose time runs next.
func (c *Clock) Active() board.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Remaining returns side's time left, never negative.
func (c *Clock) Remaining(side board.Color) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	left := c.remaining[side]
	if c.running && side == c.active {
		left -= c.Now().Sub(c.lastStarted)
	}
	return max(left, 0)
}

// Expired reports which side, if any, has run out of time.
func (c *Clock) Expired() (board.Color, bool) {
	for _, side := range [...]board.Color{board.White, board.Black} {
		if c.Remaining(side) == 0 {
			return side, true
		}
	}
	return board.NoColor, false
}

// Reset restores the initial time for both sides and pauses with White active.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.remaining = [2]time.Duration{c.initial, c.initial}
	c.active = board.White
	c.running = false
}

// SetTimeControl replaces the time control and resets both sides to it.
func (c *Clock) SetTimeControl(initial, increment time.Duration) {
	c.mu.Lock()
	c.initial, c.increment = initial, increment
	c.mu.Unlock()
	c.Reset()
}

func (c *Clock) String() string {
	return fmt.Sprintf("%s %s - %s %s",
		board.White, Format(c.Remaining(board.White)),
		board.Black, Format(c.Remaining(board.Black)))
}

// Format renders d as m:ss, rounding partial seconds up so a clock only
// shows 0:00 once it has actually run out.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
