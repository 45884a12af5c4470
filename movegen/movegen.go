// Package movegen generates and applies Othello moves on bitboards.
package movegen

import (
	"github.com/flipside/othello/board"
)

// MoveGenerator generates the legal moves of a position.
type MoveGenerator interface {
	GenAll(b board.Board) board.Plys
}

// BitboardGenerator is the default MoveGenerator.
type BitboardGenerator struct{}

func (BitboardGenerator) GenAll(b board.Board) board.Plys {
	return LegalMoves(b)
}

// MovesFor returns every empty square where player would capture at least
// one opponent disc. Swap the arguments to ask about the other side.
func MovesFor(player, opponent uint64) board.Plys {
	empty := ^(player | opponent)
	var moves uint64
	for _, d := range directions {
		opp := opponent & d.runMask
		run := shift(player, d.shift) & opp
		for i := 0; i < rayExtensions; i++ {
			run |= shift(run, d.shift) & opp
		}
		moves |= shift(run, d.shift) & empty
	}
	return board.Plys(moves)
}

// LegalMoves returns the moves of the side to move; none once the game is
// over.
func LegalMoves(b board.Board) board.Plys {
	if b.GameOver() {
		return 0
	}
	return MovesFor(b.Player(), b.Opponent())
}

func HasMoves(b board.Board) bool {
	return !LegalMoves(b).IsEmpty()
}

// Mobility returns the number of legal moves for each color, regardless of
// whose turn it is.
func Mobility(b board.Board) (black, white int) {
	black = MovesFor(b.Black(), b.White()).Count()
	white = MovesFor(b.White(), b.Black()).Count()
	return black, white
}
