package equity

import (
	"math/bits"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/movegen"
)

const (
	fileA = 0x0101010101010101
	fileH = 0x8080808080808080
	rank1 = 0x00000000000000FF
	rank8 = 0xFF00000000000000

	border = fileA | fileH | rank1 | rank8

	safeDiscWeight = 10
	xSquareWeight  = 10

	// passes of the safe disc fill
	safeFillPasses = 7
)

// Each helper returns the squares whose neighbor in the named direction is
// set in x.
func northOf(x uint64) uint64 { return x << 8 }
func southOf(x uint64) uint64 { return x >> 8 }
func westOf(x uint64) uint64  { return (x << 1) &^ fileA }
func eastOf(x uint64) uint64  { return (x >> 1) &^ fileH }
func nwOf(x uint64) uint64    { return (x << 9) &^ fileA }
func neOf(x uint64) uint64    { return (x << 7) &^ fileH }
func swOf(x uint64) uint64    { return (x >> 7) &^ fileA }
func seOf(x uint64) uint64    { return (x >> 9) &^ fileH }

// SafeDiscs approximates the discs in mask that can never be flipped. A disc
// is kept when, towards one corner, its neighbors along the rank, file and
// diagonal are kept (or it sits on that edge), and along the crossing
// diagonal at least one neighbor is kept (or it sits on any edge). The four
// corner fills are unioned.
func SafeDiscs(mask uint64) uint64 {
	nw, ne, se, sw := mask, mask, mask, mask
	for i := 0; i < safeFillPasses; i++ {
		nw = mask & (westOf(nw) | fileA) & (northOf(nw) | rank1) &
			(nwOf(nw) | fileA | rank1) & (neOf(nw) | swOf(nw) | border)
		ne = mask & (eastOf(ne) | fileH) & (northOf(ne) | rank1) &
			(neOf(ne) | fileH | rank1) & (nwOf(ne) | seOf(ne) | border)
		se = mask & (eastOf(se) | fileH) & (southOf(se) | rank8) &
			(seOf(se) | fileH | rank8) & (neOf(se) | swOf(se) | border)
		sw = mask & (westOf(sw) | fileA) & (southOf(sw) | rank8) &
			(swOf(sw) | fileA | rank8) & (nwOf(sw) | seOf(sw) | border)
	}
	return nw | ne | se | sw
}

// x-square and the corner behind it
var xSquares = [4][2]uint{
	{9, 0},   // b2, a1
	{14, 7},  // g2, h1
	{49, 56}, // b7, a8
	{54, 63}, // g7, h8
}

// ExposedXSquares counts the discs of mask on an x-square whose corner is
// not also in mask.
func ExposedXSquares(mask uint64) int {
	n := 0
	for _, xs := range xSquares {
		x, corner := uint64(1)<<xs[0], uint64(1)<<xs[1]
		if mask&x != 0 && mask&corner == 0 {
			n++
		}
	}
	return n
}

// Breakdown holds the terms of a heuristic score.
type Breakdown struct {
	MobilityBlack int
	MobilityWhite int
	SafeBlack     int
	SafeWhite     int
	XBlack        int
	XWhite        int
	Score         Eval
	Terminal      bool
}

// Heuristic weighs mobility, safe discs and exposed x-squares. Finished
// games are scored by their final disc differential.
type Heuristic struct{}

func (h Heuristic) Evaluate(b board.Board) Response {
	if b.GameOver() {
		return terminal(b)
	}
	return Response{Eval: h.Breakdown(b).Score}
}

func (Heuristic) Breakdown(b board.Board) Breakdown {
	if b.GameOver() {
		return Breakdown{Score: terminal(b).Eval, Terminal: true}
	}
	var bd Breakdown
	bd.MobilityBlack, bd.MobilityWhite = movegen.Mobility(b)
	bd.SafeBlack = bits.OnesCount64(SafeDiscs(b.Black()))
	bd.SafeWhite = bits.OnesCount64(SafeDiscs(b.White()))
	bd.XBlack = ExposedXSquares(b.Black())
	bd.XWhite = ExposedXSquares(b.White())

	score := (bd.MobilityBlack - bd.MobilityWhite) +
		safeDiscWeight*(bd.SafeBlack-bd.SafeWhite) -
		xSquareWeight*(bd.XBlack-bd.XWhite)
	bd.Score = Eval(score)
	return bd
}
