package board

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/samber/lo"
)

var ErrInvalidPly = errors.New("a ply must have exactly one bit set")

// Ply is a single move: exactly one target square. The zero value means
// "no ply".
type Ply struct {
	mask uint64
}

// NewPly wraps a single-bit mask.
func NewPly(mask uint64) (Ply, error) {
	if bits.OnesCount64(mask) != 1 {
		return Ply{}, fmt.Errorf("%w: %#016x", ErrInvalidPly, mask)
	}
	return Ply{mask: mask}, nil
}

// PlyAt returns the ply for a 0-indexed row and column.
func PlyAt(row, col int) (Ply, error) {
	if row < 0 || row >= Dim || col < 0 || col >= Dim {
		return Ply{}, fmt.Errorf("%w: square (%d, %d) is off the board", ErrInvalidPly, row, col)
	}
	return Ply{mask: uint64(1) << (row*Dim + col)}, nil
}

// ParsePly reads a square name such as "d3" (file a-h, rank 1-8).
func ParsePly(s string) (Ply, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Ply{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidPly, s)
	}
	col := int(s[0]) - 'a'
	row := int(s[1]) - '1'
	return PlyAt(row, col)
}

func (p Ply) IsValid() bool {
	return p.mask != 0
}

func (p Ply) Mask() uint64 {
	return p.mask
}

// Index is the square number, 0..63.
func (p Ply) Index() int {
	return bits.TrailingZeros64(p.mask)
}

func (p Ply) Row() int {
	return p.Index() / Dim
}

func (p Ply) Col() int {
	return p.Index() % Dim
}

func (p Ply) String() string {
	if !p.IsValid() {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col(), p.Row()+1)
}

// Plys is a set of target squares, usually the legal moves of a position.
type Plys uint64

func (p Plys) IsEmpty() bool {
	return p == 0
}

func (p Plys) Count() int {
	return bits.OnesCount64(uint64(p))
}

func (p Plys) Contains(ply Ply) bool {
	return ply.IsValid() && uint64(p)&ply.mask != 0
}

// Slice returns the plys in ascending square order.
func (p Plys) Slice() []Ply {
	ret := make([]Ply, 0, p.Count())
	for n := uint64(p); n != 0; n &= n - 1 {
		ret = append(ret, Ply{mask: n & -n})
	}
	return ret
}

// Set returns the plys as an unordered set.
func (p Plys) Set() map[Ply]struct{} {
	return lo.Keyify(p.Slice())
}

func (p Plys) String() string {
	return strings.Join(lo.Map(p.Slice(), func(ply Ply, _ int) string {
		return ply.String()
	}), " ")
}
