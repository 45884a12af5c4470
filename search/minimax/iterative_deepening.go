package minimax

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/equity"
)

// Result is the outcome of an iterative deepening search: the response of
// the deepest pass that finished.
type Result struct {
	Response equity.Response
	Depth    int
	Elapsed  time.Duration
	Stats    SearchStats
	Table    TableStats
}

// depthReport is written to the log stream, one YAML document per
// finished pass.
type depthReport struct {
	Depth     int        `yaml:"depth"`
	Ply       string     `yaml:"ply"`
	Eval      int32      `yaml:"eval"`
	Nodes     uint64     `yaml:"nodes"`
	ElapsedMs int64      `yaml:"elapsed-ms"`
	Table     TableStats `yaml:"table"`
}

// IterativelyDeepen searches b at depth 1, 2, ... reusing the same table,
// until a pass overruns budget or the depth ceiling is reached. The depth 1
// pass always runs to completion regardless of budget, so a move is always
// found unless ctx is cancelled first.
func (s *Solver) IterativelyDeepen(ctx context.Context, b board.Board, budget time.Duration) (Result, error) {
	if b.GameOver() || s.movegen.GenAll(b).IsEmpty() {
		return Result{}, ErrNoLegalMoves
	}
	tstart := time.Now()
	deadline := tstart.Add(budget)
	// a pass deeper than the number of empty squares sees nothing new.
	plies := min(s.maxDepth, b.Empties())

	var enc *yaml.Encoder
	if s.logStream != nil {
		enc = yaml.NewEncoder(s.logStream)
		defer enc.Close()
	}

	var result Result
	g := &errgroup.Group{}
	done := make(chan bool)

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		g.Go(func() error {
			ticker := time.NewTicker(1 * time.Second)
			defer ticker.Stop()
			var lastNodes uint64
			for {
				select {
				case <-done:
					return nil
				case <-ticker.C:
					nodes := s.nodes.Load()
					log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
					lastNodes = nodes
				}
			}
		})
	}

	g.Go(func() error {
		defer close(done)
		rootKey := s.zobrist.Hash(b)
		for p := 1; p <= plies; p++ {
			s.deadline = deadline
			if p == 1 {
				s.deadline = time.Time{}
			}
			log.Debug().Int("plies", p).Msg("deepening-iteratively")
			r, err := s.minimax(ctx, b, rootKey, p, equity.EvalMin, equity.EvalMax)
			if err != nil {
				if p > 1 && errors.Is(err, ErrSearchAborted) {
					log.Debug().Int("plies", p).Err(err).Msg("pass-aborted")
					return nil
				}
				return err
			}
			result.Response = r
			result.Depth = p
			log.Debug().Int32("eval", int32(r.Eval)).Int("ply", p).
				Str("move", r.Ply.String()).Msg("best-val")
			if enc != nil {
				err = enc.Encode(depthReport{
					Depth:     p,
					Ply:       r.Ply.String(),
					Eval:      int32(r.Eval),
					Nodes:     s.nodes.Load(),
					ElapsedMs: time.Since(tstart).Milliseconds(),
					Table:     s.ttable.Stats(),
				})
				if err != nil {
					return err
				}
			}
		}
		return nil
	})

	err := g.Wait()
	s.deadline = time.Time{}
	result.Elapsed = time.Since(tstart)
	result.Stats = s.Stats()
	result.Table = s.ttable.Stats()

	log.Debug().
		Uint64("ttable-created", result.Table.Created).
		Uint64("ttable-lookups", result.Table.Lookups).
		Uint64("ttable-hits", result.Table.Hits).
		Uint64("ttable-t2collisions", result.Table.T2Collisions).
		Int("ordering-hits", result.Stats.OrderingHits).
		Int("ordering-misses", result.Stats.OrderingMisses).
		Float64("time-elapsed-sec", result.Elapsed.Seconds()).
		Msg("solve-returning")

	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// Think picks a move for the side to move with a fresh table, spending a
// share of timeLeft given by TimeBudget.
func (s *Solver) Think(ctx context.Context, b board.Board, timeLeft time.Duration) (Result, error) {
	s.ResetTable()
	budget := TimeBudget(timeLeft, b.Empties())
	res, err := s.IterativelyDeepen(ctx, b, budget)
	if err != nil {
		return res, err
	}
	log.Info().
		Str("move", res.Response.Ply.String()).
		Int32("eval", int32(res.Response.Eval)).
		Int("depth", res.Depth).
		Dur("budget", budget).
		Dur("elapsed", res.Elapsed).
		Uint64("nodes", res.Stats.Nodes).
		Msg("engine-move")
	return res, nil
}

// GenerateMove returns the engine's choice for the side to move. It fails
// with ErrNoLegalMoves once the game is over or the side to move must pass.
func (s *Solver) GenerateMove(ctx context.Context, b board.Board, timeLeft time.Duration) (board.Ply, error) {
	res, err := s.Think(ctx, b, timeLeft)
	if err != nil {
		return board.Ply{}, err
	}
	return res.Response.Ply, nil
}
