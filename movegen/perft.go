package movegen

import "github.com/flipside/othello/board"

// Perft counts the move sequences of the given length from b. A sequence
// that reaches the end of the game early counts once.
func Perft(b board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := LegalMoves(b)
	if moves.IsEmpty() {
		return 1
	}
	if depth == 1 {
		return uint64(moves.Count())
	}
	var total uint64
	for _, ply := range moves.Slice() {
		total += Perft(Play(b, ply), depth-1)
	}
	return total
}
