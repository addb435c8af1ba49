package level

import (
	"iter"
	"strings"
	"unicode"
)

// Cell is one character of a grid at column X, row Y.
type Cell struct {
	X, Y int
	Char rune
}

// Grid is a rectangular-ish character map. Rows may differ in length.
type Grid struct {
	rows [][]rune
}

// ParseGrid splits text into rows. Both \n and \r\n line endings are
// accepted; a trailing newline does not add a row.
func ParseGrid(text string) Grid {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return Grid{}
	}
	lines := strings.Split(text, "\n")
	rows := make([][]rune, len(lines))
	for i, line := range lines {
		rows[i] = []rune(line)
	}
	return Grid{rows: rows}
}

func (g Grid) Height() int { return len(g.rows) }

// Width returns the length of the longest row.
func (g Grid) Width() int {
	w := 0
	for _, row := range g.rows {
		w = max(w, len(row))
	}
	return w
}

// At returns the character at (x, y).
func (g Grid) At(x, y int) (rune, bool) {
	if y < 0 || y >= len(g.rows) || x < 0 || x >= len(g.rows[y]) {
		return 0, false
	}
	return g.rows[y][x], true
}

// Cells yields the occupied cells in row-major order. '.' and whitespace
// mark empty cells and are skipped.
func (g Grid) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for y, row := range g.rows {
			for x, ch := range row {
				if ch == '.' || unicode.IsSpace(ch) {
					continue
				}
				if !yield(Cell{X: x, Y: y, Char: ch}) {
					return
				}
			}
		}
	}
}
