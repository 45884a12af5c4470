package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/movegen"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

func formatClock(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	m := int(d / time.Minute)
	s := (d % time.Minute).Seconds()
	return fmt.Sprintf("%02d:%04.1f", m, s)
}

// ToDisplayText renders the board with the legal moves marked, and a side
// panel with the clocks and the last few moves.
func (g *Game) ToDisplayText() string {
	bt := g.board.ToDisplayText(movegen.LegalMoves(g.board))
	lines := strings.Split(bt, "\n")
	hpadding := 3
	vpadding := 2

	for i, side := range []board.Color{board.Black, board.White} {
		marker := " "
		if g.board.Turn() == side && g.Playing() {
			marker = ">"
		}
		addText(lines, vpadding+i, hpadding, fmt.Sprintf("%s %-5s %s",
			marker, side, formatClock(g.TimeLeft(side))))
	}

	vpadding = 5
	addText(lines, vpadding, hpadding, fmt.Sprintf("Turn %d", g.Turn()))
	const shown = 5
	from := max(0, len(g.history)-shown)
	for i, t := range g.history[from:] {
		addText(lines, vpadding+1+i, hpadding, fmt.Sprintf("%2d. %s", from+i+1, t))
	}
	if !g.Playing() {
		addText(lines, vpadding+shown+2, hpadding, g.Result().String())
	}
	return strings.Join(lines, "\n")
}
