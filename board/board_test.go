package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestStartingPosition(t *testing.T) {
	is := is.New(t)
	b := StartingPosition()
	is.Equal(b.Turn(), Black)
	is.Equal(b.Count(), 4)
	is.Equal(b.CountBlack(), 2)
	is.Equal(b.CountWhite(), 2)
	is.Equal(b.Empties(), 60)
	is.Equal(b.Black()&b.White(), uint64(0))

	is.Equal(b.At(3, 3), White) // d4
	is.Equal(b.At(4, 4), White) // e5
	is.Equal(b.At(3, 4), Black) // e4
	is.Equal(b.At(4, 3), Black) // d5
	is.Equal(b.At(0, 0), Empty)
	is.Equal(b.At(-1, 3), Empty)
	is.Equal(b.At(3, 8), Empty)
}

func TestNewBoardRejectsOverlap(t *testing.T) {
	is := is.New(t)
	_, err := NewBoard(0x0000000810000000, 0x0000001018000000, Black)
	is.True(errors.Is(err, ErrOverlap))

	_, err = NewBoard(1, 2, Color(7))
	is.True(errors.Is(err, ErrInvalidColor))

	b, err := NewBoard(1, 2, White)
	is.NoErr(err)
	is.Equal(b.At(0, 0), Black)
	is.Equal(b.At(0, 1), White)
	is.Equal(b.Player(), uint64(2))
	is.Equal(b.Opponent(), uint64(1))
}

func TestFlipTurn(t *testing.T) {
	is := is.New(t)
	b := StartingPosition()
	f := b.FlipTurn()
	is.Equal(f.Turn(), White)
	is.Equal(b.Turn(), Black) // original untouched
	is.Equal(f.FlipTurn(), b)

	over := b.EndGame()
	is.True(over.GameOver())
	is.Equal(over.FlipTurn(), over)
	is.Equal(over.Player(), uint64(0))
}

func TestWinner(t *testing.T) {
	is := is.New(t)
	b, err := NewBoard(0b111, 0b1000, Empty)
	is.NoErr(err)
	is.Equal(b.Winner(), Black)
	is.Equal(b.DiscDifferential(), 2)

	b, err = NewBoard(0b1, 0b10, Empty)
	is.NoErr(err)
	is.Equal(b.Winner(), Empty)
}

func TestBoardIsComparable(t *testing.T) {
	is := is.New(t)
	m := map[Board]int{StartingPosition(): 1}
	b, err := NewBoard(0x0000000810000000, 0x0000001008000000, Black)
	is.NoErr(err)
	is.Equal(m[b], 1)
	is.Equal(m[b.FlipTurn()], 0)
}
