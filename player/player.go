// Package player has the move sources that drive a game: the search
// engine, a random mover and a human at the keyboard.
package player

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/config"
	"github.com/flipside/othello/equity"
	"github.com/flipside/othello/movegen"
	"github.com/flipside/othello/search/minimax"
)

type Player interface {
	Name() string
	GenerateMove(ctx context.Context, b board.Board, timeLeft time.Duration) (board.Ply, error)
}

// MinimaxPlayer asks the search engine for every move.
type MinimaxPlayer struct {
	name   string
	solver *minimax.Solver

	mu   sync.Mutex
	last minimax.Result
}

// NewMinimaxPlayer builds a solver from the engine settings in cfg.
func NewMinimaxPlayer(name string, cfg *config.Config) (*MinimaxPlayer, error) {
	ev, err := equity.NewEvaluator(cfg.GetString(config.ConfigEvaluator))
	if err != nil {
		return nil, err
	}
	policy, err := minimax.ParseReplacementPolicy(cfg.GetString(config.ConfigTTReplacement))
	if err != nil {
		return nil, err
	}
	s := minimax.NewSolver(movegen.BitboardGenerator{}, ev)
	s.SetReplacementPolicy(policy)
	s.SetSizeHint(minimax.SizeHint(cfg.GetFloat64(config.ConfigTTMemoryFraction)))
	s.SetMaxDepth(cfg.GetInt(config.ConfigMaxDepth))
	s.ResetTable()
	return NewMinimaxPlayerFromSolver(name, s), nil
}

func NewMinimaxPlayerFromSolver(name string, s *minimax.Solver) *MinimaxPlayer {
	return &MinimaxPlayer{name: name, solver: s}
}

func (p *MinimaxPlayer) Name() string {
	return p.name
}

func (p *MinimaxPlayer) Solver() *minimax.Solver {
	return p.solver
}

func (p *MinimaxPlayer) GenerateMove(ctx context.Context, b board.Board, timeLeft time.Duration) (board.Ply, error) {
	res, err := p.solver.Think(ctx, b, timeLeft)
	if err != nil {
		return board.Ply{}, err
	}
	p.mu.Lock()
	p.last = res
	p.mu.Unlock()
	return res.Response.Ply, nil
}

// LastResult is the search report behind the last generated move.
func (p *MinimaxPlayer) LastResult() minimax.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// RandomPlayer plays a uniformly random legal move.
type RandomPlayer struct {
	name string
}

func NewRandomPlayer(name string) *RandomPlayer {
	return &RandomPlayer{name: name}
}

func (p *RandomPlayer) Name() string {
	return p.name
}

func (p *RandomPlayer) GenerateMove(ctx context.Context, b board.Board, _ time.Duration) (board.Ply, error) {
	moves := movegen.LegalMoves(b).Slice()
	if len(moves) == 0 {
		return board.Ply{}, minimax.ErrNoLegalMoves
	}
	return moves[frand.Intn(len(moves))], nil
}

var ErrNotYourTurn = errors.New("not this player's turn")

const humanPollInterval = 16 * time.Millisecond

// HumanPlayer waits for a move submitted from outside, typically the shell.
// Submitted moves that are not legal are ignored.
type HumanPlayer struct {
	name     string
	color    board.Color
	selected *Mailbox
}

func NewHumanPlayer(name string, color board.Color) *HumanPlayer {
	return &HumanPlayer{name: name, color: color, selected: NewMailbox()}
}

func (p *HumanPlayer) Name() string {
	return p.name
}

// Submit offers a move to a pending GenerateMove call.
func (p *HumanPlayer) Submit(ply board.Ply) {
	p.selected.Put(ply)
}

func (p *HumanPlayer) GenerateMove(ctx context.Context, b board.Board, _ time.Duration) (board.Ply, error) {
	if b.Turn() != p.color {
		return board.Ply{}, ErrNotYourTurn
	}
	legal := movegen.LegalMoves(b)
	ticker := time.NewTicker(humanPollInterval)
	defer ticker.Stop()
	for {
		if ply, ok := p.selected.Take(); ok {
			if legal.Contains(ply) {
				return ply, nil
			}
			log.Debug().Str("ply", ply.String()).Msg("ignoring-illegal-selection")
		}
		select {
		case <-ctx.Done():
			return board.Ply{}, ctx.Err()
		case <-ticker.C:
		}
	}
}
