package player

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/flipside/othello/board"
)

var ErrNoMove = errors.New("no move is waiting")

// AsyncMover runs one GenerateMove at a time on its own goroutine and
// posts the result to a Mailbox, so a front end can keep running while the
// player thinks.
type AsyncMover struct {
	player Player
	box    *Mailbox

	thinking atomic.Bool
	mu       sync.Mutex
	err      error
	done     chan struct{}
	cancel   context.CancelFunc
}

func NewAsyncMover(p Player) *AsyncMover {
	return &AsyncMover{player: p, box: NewMailbox()}
}

func (a *AsyncMover) Player() Player {
	return a.player
}

// Start begins thinking about b. It returns false if the mover is already
// busy or an unclaimed move is waiting in the mailbox.
func (a *AsyncMover) Start(ctx context.Context, b board.Board, timeLeft time.Duration) bool {
	if !a.box.Empty() || !a.thinking.CompareAndSwap(false, true) {
		return false
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.mu.Lock()
	a.err = nil
	a.done = done
	a.cancel = cancel
	a.mu.Unlock()

	go func() {
		defer close(done)
		defer a.thinking.Store(false)
		defer cancel()
		ply, err := a.player.GenerateMove(ctx, b, timeLeft)
		if err != nil {
			log.Debug().Err(err).Str("player", a.player.Name()).Msg("async-move-failed")
			a.mu.Lock()
			a.err = err
			a.mu.Unlock()
			return
		}
		a.box.Put(ply)
	}()
	return true
}

func (a *AsyncMover) Thinking() bool {
	return a.thinking.Load()
}

// Take claims the finished move, if there is one.
func (a *AsyncMover) Take() (board.Ply, bool) {
	return a.box.Take()
}

// Err is the error from the last finished attempt.
func (a *AsyncMover) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Cancel stops a move in progress.
func (a *AsyncMover) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
}

// Wait blocks until the current attempt finishes or ctx is done, then
// claims its move.
func (a *AsyncMover) Wait(ctx context.Context) (board.Ply, error) {
	a.mu.Lock()
	done := a.done
	a.mu.Unlock()
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return board.Ply{}, ctx.Err()
		}
	}
	if err := a.Err(); err != nil {
		return board.Ply{}, err
	}
	ply, ok := a.Take()
	if !ok {
		return board.Ply{}, ErrNoMove
	}
	return ply, nil
}
