package minimax

import (
	"cmp"
	"slices"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/equity"
	"github.com/flipside/othello/movegen"
)

type child struct {
	ply   board.Ply
	board board.Board
	key   uint64
	score equity.Eval
}

// orderMoves plays every move and sorts the results best-first for the side
// to move, using cached scores of the resulting positions. Positions not in
// the table are assumed to be as good as possible, so they are searched
// early. With one ply left the generator order is kept.
func (s *Solver) orderMoves(b board.Board, nodeKey uint64, moves board.Plys, depth int) ([]child, int, int) {
	plys := moves.Slice()
	children := make([]child, len(plys))
	for i, p := range plys {
		next := movegen.Play(b, p)
		children[i] = child{ply: p, board: next, key: s.zobrist.AddMove(nodeKey, b, next)}
	}
	if depth <= 1 {
		return children, 0, 0
	}

	maximizing := b.Turn() == board.Black
	unseen := equity.EvalMin
	if maximizing {
		unseen = equity.EvalMax
	}
	var hits, misses int
	for i := range children {
		c := &children[i]
		if s.transpositionTableOptim {
			if e := s.ttable.lookup(c.key, c.board); e.valid() {
				c.score = e.Response.Eval
				hits++
				continue
			}
		}
		c.score = unseen
		misses++
	}
	slices.SortStableFunc(children, func(a, b child) int {
		if maximizing {
			return cmp.Compare(b.score, a.score)
		}
		return cmp.Compare(a.score, b.score)
	})
	return children, hits, misses
}
