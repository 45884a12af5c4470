package movegen

import (
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/flipside/othello/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func mustPly(t *testing.T, s string) board.Ply {
	t.Helper()
	p, err := board.ParsePly(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mask(t *testing.T, squares ...string) uint64 {
	t.Helper()
	var m uint64
	for _, s := range squares {
		m |= mustPly(t, s).Mask()
	}
	return m
}

func TestStartingMoves(t *testing.T) {
	is := is.New(t)
	moves := LegalMoves(board.StartingPosition())
	is.Equal(moves.String(), "d3 c4 f5 e6")

	white := MovesFor(board.StartingPosition().White(), board.StartingPosition().Black())
	is.Equal(white.String(), "e3 f4 c5 d6")
}

func TestPerft(t *testing.T) {
	is := is.New(t)
	expected := []uint64{1, 4, 12, 56, 244, 1396, 8200}
	for depth, n := range expected {
		is.Equal(Perft(board.StartingPosition(), depth), n)
	}
}

func TestNoWraparound(t *testing.T) {
	is := is.New(t)
	// a black disc on h1 must not see a white disc on a2 as its east
	// neighbour.
	b, err := board.NewBoard(mask(t, "h1"), mask(t, "a2"), board.Black)
	is.NoErr(err)
	is.True(LegalMoves(b).IsEmpty())

	b, err = board.NewBoard(mask(t, "a2"), mask(t, "h1"), board.Black)
	is.NoErr(err)
	is.True(LegalMoves(b).IsEmpty())

	// h3 north-east lands on a3 once the row wraps.
	b, err = board.NewBoard(mask(t, "h3"), mask(t, "a3"), board.Black)
	is.NoErr(err)
	is.True(LegalMoves(b).IsEmpty())
}

func TestLongestRun(t *testing.T) {
	is := is.New(t)
	// a1 black, b1..g1 white: h1 captures six discs.
	b, err := board.NewBoard(mask(t, "a1"), mask(t, "b1", "c1", "d1", "e1", "f1", "g1"), board.Black)
	is.NoErr(err)
	is.Equal(LegalMoves(b).String(), "h1")
	after := Play(b, mustPly(t, "h1"))
	is.Equal(after.CountBlack(), 8)
	is.Equal(after.CountWhite(), 0)
	is.True(after.GameOver())
}

func TestPlayFlips(t *testing.T) {
	is := is.New(t)
	start := board.StartingPosition()
	b := Play(start, mustPly(t, "d3"))
	is.Equal(b.Black(), mask(t, "d3", "d4", "e4", "d5"))
	is.Equal(b.White(), mask(t, "e5"))
	is.Equal(b.Turn(), board.White)
	is.Equal(b.Black()&b.White(), uint64(0))
}

func TestPlayMultipleDirections(t *testing.T) {
	is := is.New(t)
	// d4 captures east (e4) and south-east (e5), but not south (d5 then
	// empty).
	black := mask(t, "f4", "f6")
	white := mask(t, "e4", "e5", "d5")
	b, err := board.NewBoard(black, white, board.Black)
	is.NoErr(err)
	after := Play(b, mustPly(t, "d4"))
	is.Equal(after.Black(), mask(t, "d4", "e4", "f4", "e5", "f6"))
	is.Equal(after.White(), mask(t, "d5"))
}

func TestIllegalPlayIsNoOp(t *testing.T) {
	is := is.New(t)
	start := board.StartingPosition()

	// occupied
	is.Equal(Play(start, mustPly(t, "d4")), start)
	// captures nothing
	is.Equal(Play(start, mustPly(t, "a1")), start)
	// no ply at all
	is.Equal(Play(start, board.Ply{}), start)

	_, err := PlayChecked(start, mustPly(t, "a1"))
	is.True(errors.Is(err, ErrIllegalMove))
	_, err = PlayChecked(start, board.Ply{})
	is.True(errors.Is(err, board.ErrInvalidPly))
	_, err = PlayChecked(start.EndGame(), mustPly(t, "d3"))
	is.True(errors.Is(err, ErrGameOver))

	b, err := PlayChecked(start, mustPly(t, "f5"))
	is.NoErr(err)
	is.Equal(b.Turn(), board.White)
}

func TestPassAndGameOver(t *testing.T) {
	is := is.New(t)
	b, err := board.NewBoard(mask(t, "a1", "a8"), mask(t, "b1", "b8"), board.Black)
	is.NoErr(err)

	b = Play(b, mustPly(t, "c1"))
	// white has nothing to play, so black moves again.
	is.Equal(b.Turn(), board.Black)
	is.Equal(b.Black(), mask(t, "a1", "b1", "c1", "a8"))
	is.Equal(b.White(), mask(t, "b8"))
	is.True(MovesFor(b.White(), b.Black()).IsEmpty())

	b = Play(b, mustPly(t, "c8"))
	is.True(b.GameOver())
	is.Equal(b.CountWhite(), 0)
	is.True(LegalMoves(b).IsEmpty())
	is.Equal(Perft(b, 3), uint64(1))
}

func TestMobility(t *testing.T) {
	is := is.New(t)
	black, white := Mobility(board.StartingPosition())
	is.Equal(black, 4)
	is.Equal(white, 4)
}

func TestRandomPlayoutsKeepInvariants(t *testing.T) {
	is := is.New(t)
	for game := 0; game < 200; game++ {
		b := board.StartingPosition()
		for !b.GameOver() {
			moves := LegalMoves(b)
			is.True(!moves.IsEmpty()) // a live position always has a move
			plys := moves.Slice()
			ply := plys[frand.Intn(len(plys))]
			before := b.Count()
			b = Play(b, ply)
			is.Equal(b.Black()&b.White(), uint64(0))
			is.Equal(b.Count(), before+1)
		}
		is.True(LegalMoves(b).IsEmpty())
		is.True(MovesFor(b.Black(), b.White()).IsEmpty())
		is.True(MovesFor(b.White(), b.Black()).IsEmpty())
	}
}

func TestBitboardGenerator(t *testing.T) {
	is := is.New(t)
	var mg MoveGenerator = BitboardGenerator{}
	is.Equal(mg.GenAll(board.StartingPosition()), LegalMoves(board.StartingPosition()))
}
