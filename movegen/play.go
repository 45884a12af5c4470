package movegen

import (
	"errors"
	"fmt"

	"github.com/flipside/othello/board"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

// Flips returns the opponent discs captured if player places a disc on the
// single-bit square sq. Each direction casts a candidate ray from sq through
// the opponent run and a backstop ray from player's discs back through the
// same run; only squares on both rays are captured.
func Flips(player, opponent, sq uint64) uint64 {
	var flips uint64
	for _, d := range directions {
		opp := opponent & d.runMask
		cand := shift(sq, d.shift) & opp
		back := shift(player, -d.shift) & opp
		for i := 0; i < rayExtensions; i++ {
			cand |= shift(cand, d.shift) & opp
			back |= shift(back, -d.shift) & opp
		}
		flips |= cand & back
	}
	return flips
}

// Play applies ply for the side to move. Playing an occupied square, or a
// square that captures nothing, returns b unchanged.
//
// After the move the turn passes to the opponent; if the opponent has no
// legal move the mover plays again, and if neither side can move the game
// is over.
func Play(b board.Board, ply board.Ply) board.Board {
	if b.GameOver() || !ply.IsValid() {
		return b
	}
	sq := ply.Mask()
	if b.Occupied()&sq != 0 {
		return b
	}
	player, opponent := b.Player(), b.Opponent()
	flips := Flips(player, opponent, sq)
	if flips == 0 {
		return b
	}
	player |= flips | sq
	opponent &^= flips

	black, white := player, opponent
	if b.Turn() == board.White {
		black, white = opponent, player
	}
	next, err := board.NewBoard(black, white, b.Turn().Opponent())
	if err != nil {
		panic(fmt.Errorf("applying %v: %w", ply, err))
	}
	return resolveTurn(next)
}

func resolveTurn(b board.Board) board.Board {
	if HasMoves(b) {
		return b
	}
	passed := b.FlipTurn()
	if HasMoves(passed) {
		return passed
	}
	return b.EndGame()
}

// PlayChecked is like Play but reports moves that would have no effect.
func PlayChecked(b board.Board, ply board.Ply) (board.Board, error) {
	if b.GameOver() {
		return b, ErrGameOver
	}
	if !ply.IsValid() {
		return b, board.ErrInvalidPly
	}
	if !LegalMoves(b).Contains(ply) {
		return b, fmt.Errorf("%w: %v for %v", ErrIllegalMove, ply, b.Turn())
	}
	return Play(b, ply), nil
}
