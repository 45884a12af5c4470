// Package equity scores Othello positions from Black's point of view:
// positive numbers favor Black and negative numbers favor White.
package equity

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/flipside/othello/board"
)

// Eval is a saturating score. EvalMax and EvalMin are certain wins for
// Black and White respectively.
type Eval int32

const (
	EvalMax  Eval = math.MaxInt32
	EvalMin  Eval = -math.MaxInt32
	EvalZero Eval = 0
)

// Add returns e+d, clamped to [EvalMin, EvalMax].
func (e Eval) Add(d Eval) Eval {
	s := int64(e) + int64(d)
	if s > int64(EvalMax) {
		return EvalMax
	}
	if s < int64(EvalMin) {
		return EvalMin
	}
	return Eval(s)
}

func (e Eval) String() string {
	margin := Eval(board.NumSquares)
	switch {
	case e > EvalMax-margin:
		return fmt.Sprintf("black wins by %d", int(e-(EvalMax-margin)))
	case e < EvalMin+margin:
		return fmt.Sprintf("white wins by %d", int((EvalMin+margin)-e))
	}
	return strconv.Itoa(int(e))
}

// Response is a search or evaluation result. A zero Ply means the result
// is a leaf judgment with no move attached.
type Response struct {
	Eval Eval
	Ply  board.Ply
}

// Less orders responses by score only. Two responses with the same score
// and different plys are equal.
func (r Response) Less(o Response) bool {
	return r.Eval < o.Eval
}

func (r Response) Compare(o Response) int {
	switch {
	case r.Eval < o.Eval:
		return -1
	case r.Eval > o.Eval:
		return 1
	}
	return 0
}

func (r Response) String() string {
	switch r.Eval {
	case EvalMax:
		return fmt.Sprintf("%v (black wins)", r.Ply)
	case EvalMin:
		return fmt.Sprintf("%v (white wins)", r.Ply)
	}
	return fmt.Sprintf("%v (%d)", r.Ply, r.Eval)
}

// Evaluator statically scores a position.
type Evaluator interface {
	Evaluate(b board.Board) Response
}

var ErrUnknownEvaluator = errors.New("unknown evaluator")

const (
	HeuristicName = "heuristic"
	DiscCountName = "discs"
)

// NewEvaluator returns the evaluator registered under name.
func NewEvaluator(name string) (Evaluator, error) {
	switch name {
	case HeuristicName, "":
		return Heuristic{}, nil
	case DiscCountName:
		return DiscCount{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
}

// terminal scores a finished game. Any win outranks every heuristic score,
// and bigger wins outrank smaller ones.
func terminal(b board.Board) Response {
	diff := Eval(b.DiscDifferential())
	switch {
	case diff > 0:
		return Response{Eval: EvalMax.Add(-board.NumSquares).Add(diff)}
	case diff < 0:
		return Response{Eval: EvalMin.Add(board.NumSquares).Add(diff)}
	}
	return Response{Eval: EvalZero}
}
