package game

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/movegen"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time {
	return f.t
}

func (f *fakeTime) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestGame(perPlayer time.Duration) (*Game, *fakeTime) {
	ft := &fakeTime{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	g := NewGame(perPlayer)
	g.clock.now = ft.now
	return g, ft
}

func mustPly(t *testing.T, s string) board.Ply {
	t.Helper()
	p, err := board.ParsePly(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestClockRunsOnlyForSideToMove(t *testing.T) {
	is := is.New(t)
	g, ft := newTestGame(time.Minute)
	g.Start()
	is.Equal(g.Clock().Running(), board.Black)

	ft.advance(10 * time.Second)
	is.Equal(g.TimeLeft(board.Black), 50*time.Second)
	is.Equal(g.TimeLeft(board.White), time.Minute)

	is.NoErr(g.PlayMove(mustPly(t, "d3")))
	is.Equal(g.Clock().Running(), board.White)
	ft.advance(5 * time.Second)
	is.Equal(g.TimeLeft(board.Black), 50*time.Second)
	is.Equal(g.TimeLeft(board.White), 55*time.Second)

	h := g.History()
	is.Equal(len(h), 1)
	is.Equal(h[0].Elapsed, 10*time.Second)
	is.Equal(h[0].Flipped, 1)
	is.Equal(h[0].Color, board.Black)
}

func TestFlagFall(t *testing.T) {
	is := is.New(t)
	g, ft := newTestGame(time.Second)
	g.Start()
	ft.advance(2 * time.Second)

	is.True(!g.Playing())
	err := g.PlayMove(mustPly(t, "d3"))
	is.True(errors.Is(err, ErrFlagFall))

	r := g.Result()
	is.True(r.FlagFall)
	is.Equal(r.Winner, board.White)
	is.True(strings.Contains(r.String(), "on time"))
	is.Equal(g.Clock().Running(), board.Empty)
}

func TestIllegalMovesAreRejected(t *testing.T) {
	is := is.New(t)
	g, _ := newTestGame(time.Minute)
	g.Start()
	err := g.PlayMove(mustPly(t, "a1"))
	is.True(errors.Is(err, movegen.ErrIllegalMove))
	is.Equal(g.Turn(), 0)
	is.Equal(g.Board(), board.StartingPosition())
}

func TestUndo(t *testing.T) {
	is := is.New(t)
	g, _ := newTestGame(time.Minute)
	is.True(errors.Is(g.UnplayLastMove(), ErrNothingToUndo))

	is.NoErr(g.PlayMove(mustPly(t, "d3")))
	is.NoErr(g.PlayMove(mustPly(t, "c3")))
	is.Equal(g.Turn(), 2)
	is.NoErr(g.UnplayLastMove())
	is.Equal(g.Turn(), 1)
	is.Equal(g.Board().Turn(), board.White)
	is.NoErr(g.UnplayLastMove())
	is.Equal(g.Board(), board.StartingPosition())
}

func TestGameToCompletion(t *testing.T) {
	is := is.New(t)
	g, ft := newTestGame(time.Hour)
	g.Start()
	for g.Playing() {
		moves := movegen.LegalMoves(g.Board()).Slice()
		ft.advance(time.Second)
		is.NoErr(g.PlayMove(moves[0]))
	}
	r := g.Result()
	is.True(!r.FlagFall)
	is.Equal(r.Winner, g.Board().Winner())
	is.Equal(r.Black+r.White, g.Board().Count())
	is.True(errors.Is(g.PlayMove(mustPly(t, "a1")), movegen.ErrGameOver))
	is.Equal(g.Clock().Running(), board.Empty)
	is.True(strings.Contains(g.ToDisplayText(), r.String()))
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	g, _ := newTestGame(90 * time.Second)
	g.Start()
	is.NoErr(g.PlayMove(mustPly(t, "d3")))
	txt := g.ToDisplayText()
	is.True(strings.Contains(txt, "01:30.0"))
	is.True(strings.Contains(txt, "> white"))
	is.True(strings.Contains(txt, "1. black d3 (+1)"))
}

func TestGameIDsAreUnique(t *testing.T) {
	is := is.New(t)
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewGame(time.Minute).Uid()
		is.True(id != "")
		is.True(!seen[id])
		seen[id] = true
	}
}
