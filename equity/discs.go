package equity

import "github.com/flipside/othello/board"

// DiscCount scores a position by disc differential alone.
type DiscCount struct{}

func (DiscCount) Evaluate(b board.Board) Response {
	if b.GameOver() {
		return terminal(b)
	}
	return Response{Eval: Eval(b.DiscDifferential())}
}
