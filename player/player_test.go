package player

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/config"
	"github.com/flipside/othello/movegen"
	"github.com/flipside/othello/search/minimax"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestMailbox(t *testing.T) {
	is := is.New(t)
	m := NewMailbox()
	_, ok := m.Take()
	is.True(!ok)
	is.True(m.Empty())

	d3, _ := board.ParsePly("d3")
	c4, _ := board.ParsePly("c4")
	m.Put(d3)
	m.Put(c4)
	is.True(!m.Empty())
	ply, ok := m.Take()
	is.True(ok)
	is.Equal(ply, c4)
	_, ok = m.Take()
	is.True(!ok)
}

func TestMinimaxPlayerFromConfig(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigMaxDepth, 3)
	cfg.Set(config.ConfigTTReplacement, "deeper")
	p, err := NewMinimaxPlayer("engine", cfg)
	is.NoErr(err)
	is.Equal(p.Name(), "engine")

	start := board.StartingPosition()
	ply, err := p.GenerateMove(context.Background(), start, time.Minute)
	is.NoErr(err)
	is.True(movegen.LegalMoves(start).Contains(ply))
	is.True(p.LastResult().Depth >= 1)
	is.True(p.LastResult().Depth <= 3)

	cfg.Set(config.ConfigEvaluator, "nope")
	_, err = NewMinimaxPlayer("engine", cfg)
	is.True(err != nil)
}

func TestRandomPlayer(t *testing.T) {
	is := is.New(t)
	p := NewRandomPlayer("rnd")
	start := board.StartingPosition()
	for i := 0; i < 20; i++ {
		ply, err := p.GenerateMove(context.Background(), start, 0)
		is.NoErr(err)
		is.True(movegen.LegalMoves(start).Contains(ply))
	}
	_, err := p.GenerateMove(context.Background(), start.EndGame(), 0)
	is.True(errors.Is(err, minimax.ErrNoLegalMoves))
}

func TestHumanPlayerIgnoresIllegalMoves(t *testing.T) {
	is := is.New(t)
	h := NewHumanPlayer("me", board.Black)
	start := board.StartingPosition()

	a1, _ := board.ParsePly("a1")
	f5, _ := board.ParsePly("f5")
	go func() {
		h.Submit(a1)
		time.Sleep(50 * time.Millisecond)
		h.Submit(f5)
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ply, err := h.GenerateMove(ctx, start, 0)
	is.NoErr(err)
	is.Equal(ply, f5)

	_, err = h.GenerateMove(ctx, start.FlipTurn(), 0)
	is.True(errors.Is(err, ErrNotYourTurn))

	short, cancel2 := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel2()
	_, err = h.GenerateMove(short, start, 0)
	is.True(errors.Is(err, context.DeadlineExceeded))
}

func TestAsyncMover(t *testing.T) {
	is := is.New(t)
	a := NewAsyncMover(NewRandomPlayer("rnd"))
	start := board.StartingPosition()
	is.True(a.Start(context.Background(), start, time.Second))

	ply, err := a.Wait(context.Background())
	is.NoErr(err)
	is.True(movegen.LegalMoves(start).Contains(ply))
	is.True(!a.Thinking())

	_, err = a.Wait(context.Background())
	is.True(errors.Is(err, ErrNoMove))

	// an unclaimed move blocks the next start
	is.True(a.Start(context.Background(), start, time.Second))
	for a.Thinking() {
		time.Sleep(time.Millisecond)
	}
	is.True(!a.Start(context.Background(), start, time.Second))
	_, ok := a.Take()
	is.True(ok)
}

func TestAsyncMoverCancel(t *testing.T) {
	is := is.New(t)
	h := NewHumanPlayer("me", board.Black)
	a := NewAsyncMover(h)
	is.True(a.Start(context.Background(), board.StartingPosition(), time.Minute))
	is.True(!a.Start(context.Background(), board.StartingPosition(), time.Minute))
	a.Cancel()
	_, err := a.Wait(context.Background())
	is.True(errors.Is(err, context.Canceled))
	is.Equal(a.Player().Name(), "me")
}
