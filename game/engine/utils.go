package engine

import (
	"strings"

	"github.com/wricardo/gridpath/game/grid"
)

// ManhattanDistance calculates the Manhattan distance between two coordinates.
// On an open grid it equals the BFS path length.
func ManhattanDistance(from, to grid.Coordinate) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// CountCellState counts the cells of a specific state in a snapshot
func CountCellState(cells [][]grid.CellState, state grid.CellState) int {
	count := 0
	for _, row := range cells {
		for _, cell := range row {
			if cell == state {
				count++
			}
		}
	}
	return count
}

// FormatRows renders a snapshot as text rows, highest y first, using one
// character per cell.
func FormatRows(cells [][]grid.CellState) []string {
	rows := make([]string, 0, len(cells))
	for y := len(cells) - 1; y >= 0; y-- {
		var sb strings.Builder
		for _, cell := range cells[y] {
			sb.WriteByte(cell.Char())
		}
		rows = append(rows, sb.String())
	}
	return rows
}
