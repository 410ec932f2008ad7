package game

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMove converts a move to "sub/cell" notation, both indices 0-8
// row-major, e.g. "4/7" for the center sub-board's bottom-middle cell.
func FormatMove(m Move) string {
	return fmt.Sprintf("%d/%d", m.Sub, m.Cell)
}

// ParseMove parses "sub/cell" notation.
func ParseMove(s string) (Move, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return NoMove, fmt.Errorf("move should be in format 'sub/cell', got %q", s)
	}
	sub, err1 := strconv.Atoi(parts[0])
	cell, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || sub < 0 || sub > 8 || cell < 0 || cell > 8 {
		return NoMove, fmt.Errorf("move indices must be 0-8, got %q", s)
	}
	return Move{Sub: int8(sub), Cell: int8(cell)}, nil
}

// Render returns a plain-text picture of the full board, macro rows
// separated by rulers. Finished sub-boards still show their cells.
func Render(state BoardState) string {
	var b strings.Builder
	for bigRow := 0; bigRow < 3; bigRow++ {
		for row := 0; row < 3; row++ {
			for bigCol := 0; bigCol < 3; bigCol++ {
				sub := state.Subs[bigRow*3+bigCol]
				for col := 0; col < 3; col++ {
					b.WriteString(sub.CellMark(row*3 + col).String())
					if col < 2 {
						b.WriteByte(' ')
					}
				}
				if bigCol < 2 {
					b.WriteString(" | ")
				}
			}
			b.WriteByte('\n')
		}
		if bigRow < 2 {
			b.WriteString("------+-------+------\n")
		}
	}
	return b.String()
}
