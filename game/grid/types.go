package grid

import (
	"errors"
	"fmt"
)

// CellState is the classification of a single grid cell
type CellState string

const (
	Free     CellState = "free"
	Wall     CellState = "wall"
	Start    CellState = "start"
	Target   CellState = "target"
	Explored CellState = "explored"
	Path     CellState = "path"
)

// IsTopology reports whether the state belongs to the persistent layout
// rather than the search overlay.
func (s CellState) IsTopology() bool {
	switch s {
	case Free, Wall, Start, Target:
		return true
	}
	return false
}

// IsOverlay reports whether the state is a transient search marking.
func (s CellState) IsOverlay() bool {
	return s == Explored || s == Path
}

// Char returns the single-character form used in text layouts.
func (s CellState) Char() byte {
	switch s {
	case Wall:
		return '#'
	case Start:
		return 'S'
	case Target:
		return 'T'
	case Explored:
		return 'o'
	case Path:
		return '*'
	default:
		return '.'
	}
}

// Coordinate indexes a cell by column (X) and row (Y)
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String implements fmt.Stringer
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the coordinate shifted by the given offset.
func (c Coordinate) Add(dx, dy int) Coordinate {
	return Coordinate{X: c.X + dx, Y: c.Y + dy}
}

// Sentinel errors for grid operations.
var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")

	// ErrProtected is returned when an edit would overwrite the start or target cell.
	ErrProtected = errors.New("grid: start and target cells are protected")

	// ErrInvalidConfiguration is returned for unusable construction parameters.
	ErrInvalidConfiguration = errors.New("grid: invalid configuration")

	// ErrInvalidCoordinate is returned when start or target lie outside the grid at
	// construction. Errors wrapping it also match ErrInvalidConfiguration.
	ErrInvalidCoordinate = errors.New("grid: invalid coordinate")

	// ErrInvariantViolation signals a broken start/target invariant. Not user-triggerable.
	ErrInvariantViolation = errors.New("grid: invariant violation")
)
