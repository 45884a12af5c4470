package zobrist

import (
	"math/bits"

	"lukechampine.com/frand"

	"github.com/flipside/othello/board"
)

const bignum = 1<<63 - 2

// Zobrist hashes Othello positions.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	posTable  [board.NumSquares][2]uint64
	turnTable [3]uint64
}

// Initialize fills the key tables with fresh random numbers. Keys from two
// differently initialized Zobrists are not comparable.
func (z *Zobrist) Initialize() {
	for i := 0; i < board.NumSquares; i++ {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	// turnTable[board.Empty] is the game-over key.
	for i := range z.turnTable {
		z.turnTable[i] = frand.Uint64n(bignum) + 1
	}
}

// New returns an initialized Zobrist.
func New() *Zobrist {
	z := &Zobrist{}
	z.Initialize()
	return z
}

func (z *Zobrist) discs(key uint64, mask uint64, color int) uint64 {
	for ; mask != 0; mask &= mask - 1 {
		key ^= z.posTable[bits.TrailingZeros64(mask)][color]
	}
	return key
}

func (z *Zobrist) Hash(b board.Board) uint64 {
	key := z.turnTable[b.Turn()]
	key = z.discs(key, b.Black(), 0)
	key = z.discs(key, b.White(), 1)
	return key
}

// AddMove updates key, the hash of before, into the hash of after. Only
// the squares that changed owner are visited, so after must be reachable
// from before by a single move.
func (z *Zobrist) AddMove(key uint64, before, after board.Board) uint64 {
	// Squares newly black were either empty or white; the same holds for
	// white.
	gainedB := after.Black() &^ before.Black()
	gainedW := after.White() &^ before.White()
	key = z.discs(key, gainedB, 0)
	key = z.discs(key, gainedB&before.White(), 1)
	key = z.discs(key, gainedW, 1)
	key = z.discs(key, gainedW&before.Black(), 0)
	key ^= z.turnTable[before.Turn()] ^ z.turnTable[after.Turn()]
	return key
}
