package game

import (
	"sync"
	"time"

	"github.com/flipside/othello/board"
)

// Clock is a two-sided game clock. Only the running side's time counts
// down.
type Clock struct {
	sync.Mutex
	remaining [2]time.Duration
	running   board.Color
	since     time.Time
	now       func() time.Time
}

func NewClock(perPlayer time.Duration) *Clock {
	return &Clock{
		remaining: [2]time.Duration{perPlayer, perPlayer},
		now:       time.Now,
	}
}

func sideIdx(c board.Color) int {
	if c == board.White {
		return 1
	}
	return 0
}

// settle charges the running side for the time since it was started.
// The caller holds the lock.
func (c *Clock) settle() {
	if c.running == board.Empty {
		return
	}
	t := c.now()
	i := sideIdx(c.running)
	c.remaining[i] -= t.Sub(c.since)
	if c.remaining[i] < 0 {
		c.remaining[i] = 0
	}
	c.since = t
}

// Switch stops the running side and starts side. Switching to Empty stops
// the clock.
func (c *Clock) Switch(side board.Color) {
	c.Lock()
	defer c.Unlock()
	c.settle()
	c.running = side
	c.since = c.now()
}

func (c *Clock) Stop() {
	c.Switch(board.Empty)
}

func (c *Clock) Running() board.Color {
	c.Lock()
	defer c.Unlock()
	return c.running
}

// Remaining is side's time left, never negative.
func (c *Clock) Remaining(side board.Color) time.Duration {
	c.Lock()
	defer c.Unlock()
	rem := c.remaining[sideIdx(side)]
	if side == c.running && c.running != board.Empty {
		rem -= c.now().Sub(c.since)
	}
	return max(rem, 0)
}

// Flagged returns the side that ran out of time, or Empty.
func (c *Clock) Flagged() board.Color {
	for _, side := range []board.Color{board.Black, board.White} {
		if c.Remaining(side) == 0 {
			return side
		}
	}
	return board.Empty
}
