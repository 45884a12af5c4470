// Package minimax searches Othello game trees with alpha-beta minimax.
// Black is the maximizing side and White the minimizing side.
package minimax

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/equity"
	"github.com/flipside/othello/movegen"
	"github.com/flipside/othello/zobrist"
)

const DefaultMaxDepth = 60

var (
	// ErrSearchAborted means a pass ran out of time or was cancelled before
	// it finished. Nothing computed by the aborted pass is returned.
	ErrSearchAborted = errors.New("search aborted")
	ErrNoLegalMoves  = errors.New("side to move has no legal moves")
)

// SearchStats accumulates over one search session.
type SearchStats struct {
	Nodes          uint64 `yaml:"nodes"`
	OrderingHits   int    `yaml:"ordering-hits"`
	OrderingMisses int    `yaml:"ordering-misses"`
	Cutoffs        int    `yaml:"cutoffs"`
}

type Solver struct {
	movegen   movegen.MoveGenerator
	evaluator equity.Evaluator

	ttable  *TranspositionTable
	zobrist *zobrist.Zobrist

	transpositionTableOptim bool
	pruning                 bool
	policy                  ReplacementPolicy
	sizeHint                int
	maxDepth                int

	// zero means no deadline
	deadline time.Time
	nodes    atomic.Uint64
	stats    SearchStats

	logStream io.Writer
}

func NewSolver(mg movegen.MoveGenerator, ev equity.Evaluator) *Solver {
	s := &Solver{
		movegen:                 mg,
		evaluator:               ev,
		transpositionTableOptim: true,
		pruning:                 true,
		policy:                  ReplaceAlways,
		maxDepth:                DefaultMaxDepth,
	}
	s.ResetTable()
	return s
}

// ResetTable discards the transposition table and the session counters.
func (s *Solver) ResetTable() {
	s.ttable = NewTranspositionTable(s.policy, s.sizeHint)
	s.zobrist = s.ttable.Zobrist()
	s.nodes.Store(0)
	s.stats = SearchStats{}
}

func (s *Solver) SetPruning(p bool) {
	s.pruning = p
}

func (s *Solver) SetTranspositionTableOptim(tt bool) {
	s.transpositionTableOptim = tt
}

// SetReplacementPolicy takes effect at the next ResetTable.
func (s *Solver) SetReplacementPolicy(p ReplacementPolicy) {
	s.policy = p
}

// SetSizeHint sets the initial capacity of tables made by ResetTable.
func (s *Solver) SetSizeHint(n int) {
	s.sizeHint = n
}

func (s *Solver) SetMaxDepth(d int) {
	if d < 1 || d > DefaultMaxDepth {
		d = DefaultMaxDepth
	}
	s.maxDepth = d
}

func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

func (s *Solver) TranspositionTable() *TranspositionTable {
	return s.ttable
}

func (s *Solver) Stats() SearchStats {
	st := s.stats
	st.Nodes = s.nodes.Load()
	return st
}

// Search runs one alpha-beta pass of the given depth with no deadline. The
// transposition table is kept between calls until ResetTable.
func (s *Solver) Search(ctx context.Context, b board.Board, depth int) (equity.Response, error) {
	if depth < 0 {
		return equity.Response{}, fmt.Errorf("depth must not be negative, got %d", depth)
	}
	s.deadline = time.Time{}
	return s.minimax(ctx, b, s.zobrist.Hash(b), depth, equity.EvalMin, equity.EvalMax)
}

func (s *Solver) checkAbort(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSearchAborted, err)
	}
	if !s.deadline.IsZero() && !time.Now().Before(s.deadline) {
		return ErrSearchAborted
	}
	return nil
}

func (s *Solver) minimax(ctx context.Context, b board.Board, nodeKey uint64, depth int, α, β equity.Eval) (equity.Response, error) {
	if err := s.checkAbort(ctx); err != nil {
		return equity.Response{}, err
	}
	s.nodes.Add(1)

	if s.transpositionTableOptim {
		ttEntry := s.ttable.lookup(nodeKey, b)
		if ttEntry.valid() && ttEntry.Depth >= depth {
			score := ttEntry.Response.Eval
			switch ttEntry.Flag {
			case TTExact:
				return ttEntry.Response, nil
			case TTLower:
				α = max(α, score)
			case TTUpper:
				β = min(β, score)
			}
			if β <= α {
				return ttEntry.Response, nil
			}
		}
	}

	if depth == 0 || b.GameOver() {
		return s.leaf(b, nodeKey, depth), nil
	}

	moves := s.movegen.GenAll(b)
	if moves.IsEmpty() {
		// Only boards built outside of movegen.Play can get here.
		passed := b.FlipTurn()
		if s.movegen.GenAll(passed).IsEmpty() {
			over := b.EndGame()
			return s.leaf(over, s.zobrist.Hash(over), depth), nil
		}
		return s.minimax(ctx, passed, s.zobrist.Hash(passed), depth, α, β)
	}

	children, hits, misses := s.orderMoves(b, nodeKey, moves, depth)
	s.stats.OrderingHits += hits
	s.stats.OrderingMisses += misses

	maximizing := b.Turn() == board.Black
	windowα, windowβ := α, β
	var best equity.Response
	hasBest := false
	for _, c := range children {
		r, err := s.minimax(ctx, c.board, c.key, depth-1, α, β)
		if err != nil {
			return equity.Response{}, err
		}
		if !hasBest || (maximizing && r.Eval > best.Eval) || (!maximizing && r.Eval < best.Eval) {
			best = equity.Response{Eval: r.Eval, Ply: c.ply}
			hasBest = true
		}
		if !s.pruning {
			continue
		}
		if maximizing {
			α = max(α, best.Eval)
		} else {
			β = min(β, best.Eval)
		}
		if β <= α {
			s.stats.Cutoffs++
			break
		}
	}

	if s.transpositionTableOptim {
		var flag uint8
		switch {
		case best.Eval <= windowα && windowα > equity.EvalMin:
			flag = TTUpper
		case best.Eval >= windowβ && windowβ < equity.EvalMax:
			flag = TTLower
		default:
			flag = TTExact
		}
		s.ttable.store(nodeKey, b, TableEntry{Response: best, Depth: depth, Flag: flag})
	}
	return best, nil
}

// leaf evaluates b statically and caches the result at the node's depth.
func (s *Solver) leaf(b board.Board, nodeKey uint64, depth int) equity.Response {
	r := equity.Response{Eval: s.evaluator.Evaluate(b).Eval}
	if s.transpositionTableOptim {
		s.ttable.store(nodeKey, b, TableEntry{Response: r, Depth: depth, Flag: TTExact})
	}
	return r
}
