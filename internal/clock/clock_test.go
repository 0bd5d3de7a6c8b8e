package clock

import (
	"testing"
	"time"

	"github.com/hailam/chessrules/internal/board"
)

type fakeTime struct{ now time.Time }

func (f *fakeTime) Now() time.Time           { return f.now }
func (f *fakeTime) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestClock(initial, increment time.Duration) (*Clock, *fakeTime) {
	ft := &fakeTime{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := New(initial, increment)
	c.Now = ft.Now
	return c, ft
}

func TestClockCountsActiveSideOnly(t *testing.T) {
	c, ft := newTestClock(10*time.Minute, 0)

	ft.Advance(time.Minute)
	if got := c.Remaining(board.White); got != 10*time.Minute {
		t.Errorf("paused clock ran: white = %v", got)
	}

	c.Start(board.White)
	ft.Advance(90 * time.Second)
	if got := c.Remaining(board.White); got != 8*time.Minute+30*time.Second {
		t.Errorf("white = %v, want 8m30s", got)
	}
	if got := c.Remaining(board.Black); got != 10*time.Minute {
		t.Errorf("black = %v, want 10m", got)
	}

	c.Switch()
	ft.Advance(20 * time.Second)
	if got := c.Remaining(board.White); got != 8*time.Minute+30*time.Second {
		t.Errorf("white after switch = %v, want 8m30s", got)
	}
	if got := c.Remaining(board.Black); got != 9*time.Minute+40*time.Second {
		t.Errorf("black = %v, want 9m40s", got)
	}
	if c.Active() != board.Black {
		t.Errorf("active = %v, want Black", c.Active())
	}
}

func TestClockIncrement(t *testing.T) {
	c, ft := newTestClock(time.Minute, 2*time.Second)
	c.Start(board.White)
	ft.Advance(5 * time.Second)
	c.Switch()

	if got := c.Remaining(board.White); got != 57*time.Second {
		t.Errorf("white = %v, want 57s", got)
	}
}

func TestClockPause(t *testing.T) {
	c, ft := newTestClock(time.Minute, 0)
	c.Start(board.White)
	ft.Advance(10 * time.Second)
	c.Pause()
	ft.Advance(time.Hour)

	if c.Running() {
		t.Error("clock still running after Pause")
	}
	if got := c.Remaining(board.White); got != 50*time.Second {
		t.Errorf("white = %v, want 50s", got)
	}

	c.Start(board.White)
	ft.Advance(10 * time.Second)
	if got := c.Remaining(board.White); got != 40*time.Second {
		t.Errorf("white after resume = %v, want 40s", got)
	}
}

func TestClockExpired(t *testing.T) {
	c, ft := newTestClock(30*time.Second, 5*time.Second)
	if _, ok := c.Expired(); ok {
		t.Fatal("fresh clock expired")
	}

	c.Start(board.White)
	ft.Advance(time.Minute)
	side, ok := c.Expired()
	if !ok || side != board.White {
		t.Fatalf("Expired() = %v, %v; want White, true", side, ok)
	}
	if got := c.Remaining(board.White); got != 0 {
		t.Errorf("remaining = %v, want 0", got)
	}

	// A flagged side gets no increment.
	c.Switch()
	if got := c.Remaining(board.White); got != 0 {
		t.Errorf("remaining after switch = %v, want 0", got)
	}
}

func TestClockReset(t *testing.T) {
	c, ft := newTestClock(time.Minute, 0)
	c.Start(board.White)
	ft.Advance(10 * time.Second)
	c.Switch()
	c.Reset()

	if c.Running() || c.Active() != board.White {
		t.Errorf("after reset running=%v active=%v", c.Running(), c.Active())
	}
	for _, side := range []board.Color{board.White, board.Black} {
		if got := c.Remaining(side); got != time.Minute {
			t.Errorf("%v = %v, want 1m", side, got)
		}
	}
}

func TestClockSetTimeControl(t *testing.T) {
	c, ft := newTestClock(time.Minute, 0)
	c.Start(board.White)
	ft.Advance(10 * time.Second)
	c.SetTimeControl(3*time.Minute, 2*time.Second)

	if c.Running() {
		t.Error("clock still running after SetTimeControl")
	}
	if c.Initial() != 3*time.Minute || c.Increment() != 2*time.Second {
		t.Errorf("time control = %v+%v, want 3m+2s", c.Initial(), c.Increment())
	}
	if got := c.Remaining(board.White); got != 3*time.Minute {
		t.Errorf("white = %v, want 3m", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{10 * time.Minute, "10:00"},
		{65 * time.Second, "1:05"},
		{59*time.Second + 100*time.Millisecond, "1:00"},
		{500 * time.Millisecond, "0:01"},
		{0, "0:00"},
		{-time.Second, "0:00"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := Format(tc.d); got != tc.want {
				t.Errorf("Format(%v) = %q, want %q", tc.d, got, tc.want)
			}
		})
	}
}
