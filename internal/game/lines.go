package game

import "sync"

// Line is a maximal run of exactly size consecutive cells along a row,
// column, or diagonal.
type Line []Cell

// LinesThrough returns every line passing through c: its row, its column,
// and whichever of the two diagonals contain it. Two to four lines total.
func LinesThrough(size int, c Cell) []Line {
	lines := make([]Line, 0, 4)

	row := make(Line, size)
	col := make(Line, size)
	for i := 0; i < size; i++ {
		row[i] = Cell{Row: c.Row, Col: i}
		col[i] = Cell{Row: i, Col: c.Col}
	}
	lines = append(lines, row, col)

	if c.Row == c.Col {
		diag := make(Line, size)
		for i := 0; i < size; i++ {
			diag[i] = Cell{Row: i, Col: i}
		}
		lines = append(lines, diag)
	}

	if c.Row+c.Col == size-1 {
		anti := make(Line, size)
		for i := 0; i < size; i++ {
			anti[i] = Cell{Row: size - 1 - i, Col: i}
		}
		lines = append(lines, anti)
	}

	return lines
}

// WinningMove reports whether the line completed by the mark at c is fully
// owned by player. Checking only lines through the last-played cell is
// sufficient because marks are never cleared during play, so any newly
// completed line must pass through it.
func (that Board) WinningMove(c Cell, player int) bool {
	for _, line := range LinesThrough(that.size, c) {
		if that.ownsLine(line, player) {
			return true
		}
	}

	return false
}

func (that Board) ownsLine(line Line, player int) bool {
	for _, cell := range line {
		if that.At(cell) != Mark(player) {
			return false
		}
	}

	return true
}

type lineCache struct {
	mu    sync.Mutex
	lines map[int][]Line
}

var cachedLines = &lineCache{lines: make(map[int][]Line)}

// AllLines returns every winnable line of a size×size board: size rows,
// size columns, and the two diagonals. The set is cached per size.
func AllLines(size int) []Line {
	cachedLines.mu.Lock()
	defer cachedLines.mu.Unlock()

	if lines, ok := cachedLines.lines[size]; ok {
		return lines
	}

	lines := buildLines(size)
	cachedLines.lines[size] = lines

	return lines
}

func buildLines(size int) []Line {
	lines := make([]Line, 0, 2*size+2)

	for r := 0; r < size; r++ {
		line := make(Line, size)
		for i := 0; i < size; i++ {
			line[i] = Cell{Row: r, Col: i}
		}
		lines = append(lines, line)
	}

	for c := 0; c < size; c++ {
		line := make(Line, size)
		for i := 0; i < size; i++ {
			line[i] = Cell{Row: i, Col: c}
		}
		lines = append(lines, line)
	}

	diag := make(Line, size)
	anti := make(Line, size)
	for i := 0; i < size; i++ {
		diag[i] = Cell{Row: i, Col: i}
		anti[i] = Cell{Row: size - 1 - i, Col: i}
	}

	return append(lines, diag, anti)
}
