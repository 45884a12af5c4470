package zobrist

import (
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/movegen"
)

func TestHashDistinguishesTurn(t *testing.T) {
	is := is.New(t)
	z := New()
	b := board.StartingPosition()
	is.True(z.Hash(b) != z.Hash(b.FlipTurn()))
	is.True(z.Hash(b) != z.Hash(b.EndGame()))
	is.Equal(z.Hash(b), z.Hash(board.StartingPosition()))
}

func TestAddMoveMatchesHash(t *testing.T) {
	is := is.New(t)
	z := New()
	for game := 0; game < 50; game++ {
		b := board.StartingPosition()
		key := z.Hash(b)
		for !b.GameOver() {
			plys := movegen.LegalMoves(b).Slice()
			next := movegen.Play(b, plys[frand.Intn(len(plys))])
			key = z.AddMove(key, b, next)
			is.Equal(key, z.Hash(next))
			b = next
		}
	}
}

func TestNoCollisionsInPerftTree(t *testing.T) {
	is := is.New(t)
	z := New()
	seen := map[uint64]board.Board{}
	var walk func(b board.Board, depth int)
	walk = func(b board.Board, depth int) {
		key := z.Hash(b)
		if prev, ok := seen[key]; ok {
			is.Equal(prev, b) // same key, same position
		}
		seen[key] = b
		if depth == 0 {
			return
		}
		for _, p := range movegen.LegalMoves(b).Slice() {
			walk(movegen.Play(b, p), depth-1)
		}
	}
	walk(board.StartingPosition(), 5)
	is.True(len(seen) > 300)
}
