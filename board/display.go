package board

import (
	"fmt"
	"strings"
)

func (c Color) displayRune() rune {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	}
	return '.'
}

// ToDisplayText renders the board. Squares in marks are shown as '*'.
func (b Board) ToDisplayText(marks Plys) string {
	var sb strings.Builder
	sb.WriteString("   ")
	for i := 0; i < Dim; i++ {
		fmt.Fprintf(&sb, "%c ", 'a'+i)
	}
	sb.WriteString("\n")
	sb.WriteString("   " + strings.Repeat("-", Dim*2) + "\n")
	for row := 0; row < Dim; row++ {
		fmt.Fprintf(&sb, "%2d|", row+1)
		for col := 0; col < Dim; col++ {
			r := b.At(row, col).displayRune()
			if r == '.' && uint64(marks)&(uint64(1)<<(row*Dim+col)) != 0 {
				r = '*'
			}
			sb.WriteRune(r)
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", Dim*2) + "\n")
	fmt.Fprintf(&sb, "X: %d  O: %d  ", b.CountBlack(), b.CountWhite())
	if b.GameOver() {
		sb.WriteString("game over")
	} else {
		fmt.Fprintf(&sb, "%s to move", b.turn)
	}
	return "\n" + sb.String() + "\n"
}

func (b Board) String() string {
	return b.ToDisplayText(0)
}
