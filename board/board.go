// Package board holds the bitboard representation of an Othello position.
//
// Squares are numbered row-major from the top-left corner:
//
//	00 01 02 03 04 05 06 07
//	08 09 10 11 12 13 14 15
//	...
//	56 57 58 59 60 61 62 63
//
// Column 0 is file "a" and row 0 is rank "1", so square 19 is "d3".
package board

import (
	"errors"
	"fmt"
	"math/bits"
)

const (
	Dim        = 8
	NumSquares = Dim * Dim
)

// Color is the occupant of a square. As a turn, Empty means that the game
// is over and no side is to move.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "none"
}

// Opponent returns the other color. Empty stays Empty.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

var (
	ErrOverlap      = errors.New("black and white discs overlap")
	ErrInvalidColor = errors.New("invalid color")
)

const (
	startBlack = 0x0000000810000000
	startWhite = 0x0000001008000000
)

// Board is an immutable game state. It is a comparable value, so it can be
// used directly as a map key.
type Board struct {
	black uint64
	white uint64
	turn  Color
}

// NewBoard creates a board from explicit masks.
func NewBoard(black, white uint64, turn Color) (Board, error) {
	if black&white != 0 {
		return Board{}, fmt.Errorf("%w: %#016x", ErrOverlap, black&white)
	}
	if turn > White {
		return Board{}, fmt.Errorf("%w: %d", ErrInvalidColor, turn)
	}
	return Board{black: black, white: white, turn: turn}, nil
}

// StartingPosition is the canonical opening: the center 2x2 block with
// Black to move.
func StartingPosition() Board {
	return Board{black: startBlack, white: startWhite, turn: Black}
}

func (b Board) Black() uint64 { return b.black }
func (b Board) White() uint64 { return b.white }
func (b Board) Turn() Color   { return b.turn }

// Occupied is the mask of all discs on the board.
func (b Board) Occupied() uint64 {
	return b.black | b.white
}

// GameOver is true when neither side can move.
func (b Board) GameOver() bool {
	return b.turn == Empty
}

// Player returns the disc mask of the side to move, and Opponent the mask of
// the other side. Both are zero once the game is over.
func (b Board) Player() uint64 {
	switch b.turn {
	case Black:
		return b.black
	case White:
		return b.white
	}
	return 0
}

func (b Board) Opponent() uint64 {
	switch b.turn {
	case Black:
		return b.white
	case White:
		return b.black
	}
	return 0
}

// Discs returns the mask for the given color.
func (b Board) Discs(c Color) uint64 {
	switch c {
	case Black:
		return b.black
	case White:
		return b.white
	}
	return ^(b.black | b.white)
}

// At returns the occupant of a square. Squares off the board read as Empty.
func (b Board) At(row, col int) Color {
	if row < 0 || row >= Dim || col < 0 || col >= Dim {
		return Empty
	}
	mask := uint64(1) << (row*Dim + col)
	switch {
	case b.black&mask != 0:
		return Black
	case b.white&mask != 0:
		return White
	}
	return Empty
}

// FlipTurn hands the move to the other side. It does nothing once the game
// is over.
func (b Board) FlipTurn() Board {
	b.turn = b.turn.Opponent()
	return b
}

// EndGame returns the same position with no side to move.
func (b Board) EndGame() Board {
	b.turn = Empty
	return b
}

func (b Board) Count() int {
	return bits.OnesCount64(b.black | b.white)
}

func (b Board) CountBlack() int {
	return bits.OnesCount64(b.black)
}

func (b Board) CountWhite() int {
	return bits.OnesCount64(b.white)
}

func (b Board) Empties() int {
	return NumSquares - b.Count()
}

// DiscDifferential is black discs minus white discs.
func (b Board) DiscDifferential() int {
	return b.CountBlack() - b.CountWhite()
}

// Winner is only meaningful once the game is over. A tie returns Empty.
func (b Board) Winner() Color {
	switch d := b.DiscDifferential(); {
	case d > 0:
		return Black
	case d < 0:
		return White
	}
	return Empty
}
