package game

import (
	"fmt"

	"github.com/playforge/ninarow/internal/apperror"
)

// Mark is the content of a single board cell: NoMark or the owning player's ID.
type Mark int8

const NoMark Mark = -1

// Cell addresses a board position by row and column.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Board is a square grid of marks. It holds no player logic; marks are only
// ever cleared by the engine's place-and-undo walk, never during normal play.
type Board struct {
	size  int
	marks []Mark
}

func NewBoard(size int) Board {
	marks := make([]Mark, size*size)
	for i := range marks {
		marks[i] = NoMark
	}

	return Board{size: size, marks: marks}
}

func (that Board) Size() int {
	return that.size
}

func (that Board) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Col >= 0 && c.Row < that.size && c.Col < that.size
}

func (that Board) At(c Cell) Mark {
	return that.marks[that.index(c)]
}

func (that Board) IsEmpty(c Cell) bool {
	return that.InBounds(c) && that.At(c) == NoMark
}

// Place validates and marks a cell for a player.
func (that *Board) Place(c Cell, player int) error {
	if !that.InBounds(c) {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidCell, c)
	}

	if that.At(c) != NoMark {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, c)
	}

	that.Set(c, player)

	return nil
}

// Set marks a cell without validation. Callers must have checked the cell.
func (that *Board) Set(c Cell, player int) {
	that.marks[that.index(c)] = Mark(player)
}

func (that *Board) Remove(c Cell) {
	that.marks[that.index(c)] = NoMark
}

func (that Board) IsFull() bool {
	return that.CountEmpty() == 0
}

func (that Board) CountEmpty() int {
	count := 0
	for _, mark := range that.marks {
		if mark == NoMark {
			count++
		}
	}

	return count
}

func (that Board) Clone() Board {
	clone := Board{size: that.size, marks: make([]Mark, len(that.marks))}
	copy(clone.marks, that.marks)

	return clone
}

func (that Board) index(c Cell) int {
	return c.Row*that.size + c.Col
}
