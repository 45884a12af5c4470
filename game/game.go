// Package game runs an Othello game: the position, the move history and
// the players' clocks.
package game

import (
	"errors"
	"fmt"
	"math/bits"
	"time"

	"github.com/lithammer/shortuuid"
	"github.com/rs/zerolog/log"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/movegen"
)

var (
	ErrFlagFall      = errors.New("time has run out")
	ErrNothingToUndo = errors.New("no moves to undo")
)

// Turn is one move as recorded in the history.
type Turn struct {
	Color   board.Color
	Ply     board.Ply
	Flipped int
	// Elapsed is the mover's thinking time.
	Elapsed time.Duration
	// Before is the position the move was played on.
	Before board.Board
}

func (t Turn) String() string {
	return fmt.Sprintf("%s %s (+%d)", t.Color, t.Ply, t.Flipped)
}

// Result summarizes a finished game.
type Result struct {
	Winner   board.Color
	Black    int
	White    int
	FlagFall bool
}

func (r Result) String() string {
	if r.FlagFall {
		return fmt.Sprintf("%s wins on time (%d-%d)", r.Winner, r.Black, r.White)
	}
	if r.Winner == board.Empty {
		return fmt.Sprintf("tie (%d-%d)", r.Black, r.White)
	}
	return fmt.Sprintf("%s wins (%d-%d)", r.Winner, r.Black, r.White)
}

type Game struct {
	uid       string
	board     board.Board
	history   []Turn
	clock     *Clock
	perPlayer time.Duration
	flagged   board.Color
	started   bool
	turnStart time.Time
}

// NewGame sets up the starting position. The clocks start with Start.
func NewGame(perPlayer time.Duration) *Game {
	return NewGameFromBoard(board.StartingPosition(), perPlayer)
}

func NewGameFromBoard(b board.Board, perPlayer time.Duration) *Game {
	return &Game{
		uid:       shortuuid.New(),
		board:     b,
		clock:     NewClock(perPlayer),
		perPlayer: perPlayer,
	}
}

// Start runs the clock of the side to move.
func (g *Game) Start() {
	g.started = true
	g.turnStart = g.clock.now()
	g.clock.Switch(g.board.Turn())
	log.Debug().Str("uid", g.uid).Dur("per-player", g.perPlayer).Msg("game-started")
}

func (g *Game) Uid() string {
	return g.uid
}

func (g *Game) Board() board.Board {
	return g.board
}

func (g *Game) Clock() *Clock {
	return g.clock
}

func (g *Game) History() []Turn {
	return g.history
}

func (g *Game) Turn() int {
	return len(g.history)
}

func (g *Game) TimeLeft(side board.Color) time.Duration {
	return g.clock.Remaining(side)
}

// CheckFlag ends the game if the side to move has run out of time.
func (g *Game) CheckFlag() bool {
	if g.flagged != board.Empty {
		return true
	}
	if !g.started || g.board.GameOver() {
		return false
	}
	if side := g.board.Turn(); g.clock.Remaining(side) == 0 {
		g.flagged = side
		g.clock.Stop()
		log.Info().Str("uid", g.uid).Str("side", side.String()).Msg("flag-fall")
		return true
	}
	return false
}

// Playing is false once the board is finished or a flag has fallen.
func (g *Game) Playing() bool {
	return !g.board.GameOver() && !g.CheckFlag()
}

// PlayMove plays ply for the side to move and hands the clock to whoever
// moves next.
func (g *Game) PlayMove(ply board.Ply) error {
	if g.CheckFlag() {
		return fmt.Errorf("%w for %s", ErrFlagFall, g.flagged)
	}
	before := g.board
	after, err := movegen.PlayChecked(before, ply)
	if err != nil {
		return err
	}
	now := g.clock.now()
	opp := before.Turn().Opponent()
	t := Turn{
		Color:   before.Turn(),
		Ply:     ply,
		Flipped: bits.OnesCount64(before.Discs(opp) &^ after.Discs(opp)),
		Before:  before,
	}
	if g.started {
		t.Elapsed = now.Sub(g.turnStart)
	}
	g.history = append(g.history, t)
	g.board = after
	g.turnStart = now
	if g.started {
		g.clock.Switch(after.Turn())
	}
	log.Debug().Str("uid", g.uid).Str("move", t.String()).Msg("move-played")
	return nil
}

// UnplayLastMove takes back the last move. The clocks are not rewound.
func (g *Game) UnplayLastMove() error {
	if len(g.history) == 0 {
		return ErrNothingToUndo
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board = last.Before
	g.flagged = board.Empty
	if g.started {
		g.clock.Switch(g.board.Turn())
	}
	return nil
}

// Result is only meaningful once Playing is false.
func (g *Game) Result() Result {
	r := Result{
		Black: g.board.CountBlack(),
		White: g.board.CountWhite(),
	}
	if g.flagged != board.Empty {
		r.FlagFall = true
		r.Winner = g.flagged.Opponent()
		return r
	}
	r.Winner = g.board.Winner()
	return r
}
