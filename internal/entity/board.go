package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/llm-tictactoe/internal/apperror"
)

// Mark is what a player leaves in a cell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""

	// EmptySymbol is how an empty cell is shown to agents and humans.
	EmptySymbol = "-"

	BoardSize = 9
)

// Line is a row, column or diagonal, given as three cell indices.
type Line [3]int

// WinCombos are checked in this order: rows, columns, diagonals.
var WinCombos = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid stored row-major: cell i sits at row i/3, column i%3.
// It is a value type, so every method works on a copy.
type Board [BoardSize]Mark

// Opponent - returns the other player's mark.
func Opponent(mark Mark) Mark {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Winner - reports whether mark owns a whole line and returns the first such line.
func (that Board) Winner(mark Mark) (bool, Line) {
	if mark == EmptyCell {
		return false, Line{}
	}

	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true, combo
		}
	}

	return false, Line{}
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// AvailableMoves - returns the empty cells in ascending order.
func (that Board) AvailableMoves() []int {
	moves := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			moves = append(moves, i)
		}
	}
	return moves
}

// Apply - returns a copy of the board with mark placed on cell.
func (that Board) Apply(cell int, mark Mark) (Board, error) {
	if cell < 0 || cell >= BoardSize {
		return that, fmt.Errorf("%w: %w: cell %d", apperror.ErrIllegalMove, apperror.ErrInvalidCell, cell)
	}

	if that[cell] != EmptyCell {
		return that, fmt.Errorf("%w: %w: cell %d", apperror.ErrIllegalMove, apperror.ErrCellOccupied, cell)
	}

	if mark != PlayerX && mark != PlayerO {
		return that, fmt.Errorf("%w: unknown mark %q", apperror.ErrIllegalMove, mark)
	}

	that[cell] = mark

	return that, nil
}

// Symbols - returns the nine cells as display symbols, EmptySymbol for free cells.
func (that Board) Symbols() [BoardSize]string {
	var symbols [BoardSize]string
	for i, cell := range that {
		if cell == EmptyCell {
			symbols[i] = EmptySymbol
			continue
		}
		symbols[i] = string(cell)
	}
	return symbols
}

// String renders three lines of space separated symbols.
func (that Board) String() string {
	return FormatSymbols(that.Symbols())
}

// FormatSymbols - lays a symbol snapshot out as three rows.
func FormatSymbols(symbols [BoardSize]string) string {
	rows := make([]string, 0, 3)
	for i := 0; i < BoardSize; i += 3 {
		rows = append(rows, strings.Join(symbols[i:i+3], " "))
	}

	return strings.Join(rows, "\n")
}
