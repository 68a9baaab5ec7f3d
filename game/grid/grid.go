package grid

import "fmt"

// Grid is a fixed-size rectangular array of cells stored row-major.
// It is never resized after construction.
type Grid struct {
	width   int
	height  int
	cells   []CellState
	start   Coordinate
	target  Coordinate
	version uint64
}

// New creates a width x height grid with every cell Free except start and target.
func New(width, height int, start, target Coordinate) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidConfiguration, width, height)
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]CellState, width*height),
		start:  start,
		target: target,
	}

	if !g.InBounds(start) {
		return nil, fmt.Errorf("%w: %w: start %s outside %dx%d grid", ErrInvalidConfiguration, ErrInvalidCoordinate, start, width, height)
	}
	if !g.InBounds(target) {
		return nil, fmt.Errorf("%w: %w: target %s outside %dx%d grid", ErrInvalidConfiguration, ErrInvalidCoordinate, target, width, height)
	}
	if start == target {
		return nil, fmt.Errorf("%w: start and target share cell %s", ErrInvalidConfiguration, start)
	}

	for i := range g.cells {
		g.cells[i] = Free
	}
	g.cells[g.index(start)] = Start
	g.cells[g.index(target)] = Target

	return g, nil
}

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// Start returns the coordinate of the start cell
func (g *Grid) Start() Coordinate { return g.start }

// Target returns the coordinate of the target cell
func (g *Grid) Target() Coordinate { return g.target }

// Version returns the topology version. It advances on every successful
// wall toggle, start move, or target move.
func (g *Grid) Version() uint64 { return g.version }

// InBounds reports whether c lies within the grid.
func (g *Grid) InBounds(c Coordinate) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// index maps c to its row-major offset: y*width + x.
func (g *Grid) index(c Coordinate) int {
	return c.Y*g.width + c.X
}

// CellAt returns the classification of the cell at c.
func (g *Grid) CellAt(c Coordinate) (CellState, error) {
	if !g.InBounds(c) {
		return "", fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	return g.cells[g.index(c)], nil
}

// ToggleWall flips the cell at c between Wall and Free and returns the new state.
// Overlay cells count as Free. Start and target cells are rejected with ErrProtected.
func (g *Grid) ToggleWall(c Coordinate) (CellState, error) {
	if !g.InBounds(c) {
		return "", fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}

	i := g.index(c)
	switch g.cells[i] {
	case Start, Target:
		return g.cells[i], fmt.Errorf("%w: cannot toggle wall on %s cell at %s", ErrProtected, g.cells[i], c)
	case Wall:
		g.cells[i] = Free
	default:
		g.cells[i] = Wall
	}
	g.version++

	return g.cells[i], g.CheckInvariant()
}

// MoveStart relocates the start cell to c. The previous start cell becomes Free.
// Moving onto the target is rejected with ErrProtected; moving onto the current
// start is a no-op.
func (g *Grid) MoveStart(c Coordinate) error {
	return g.relocate(&g.start, Start, c)
}

// MoveTarget relocates the target cell to c. Symmetric to MoveStart.
func (g *Grid) MoveTarget(c Coordinate) error {
	return g.relocate(&g.target, Target, c)
}

func (g *Grid) relocate(pos *Coordinate, kind CellState, c Coordinate) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if c == *pos {
		return nil
	}

	dest := g.cells[g.index(c)]
	if dest == Start || dest == Target {
		return fmt.Errorf("%w: cannot move %s onto %s cell at %s", ErrProtected, kind, dest, c)
	}

	g.cells[g.index(*pos)] = Free
	g.cells[g.index(c)] = kind
	*pos = c
	g.version++

	return g.CheckInvariant()
}

// ClearTransient reverts every Explored or Path cell to Free and returns how
// many cells changed. Topology cells are untouched. Calling it twice in a row
// leaves the grid as one call did.
func (g *Grid) ClearTransient() int {
	cleared := 0
	for i, s := range g.cells {
		if s.IsOverlay() {
			g.cells[i] = Free
			cleared++
		}
	}
	return cleared
}

// Mark writes a search overlay state onto a Free or Explored cell. Topology
// cells other than Free are left alone and reported with ErrProtected.
func (g *Grid) Mark(c Coordinate, state CellState) error {
	if !state.IsOverlay() {
		return fmt.Errorf("%w: %q is not an overlay state", ErrInvalidConfiguration, state)
	}
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}

	i := g.index(c)
	switch g.cells[i] {
	case Free, Explored, Path:
		g.cells[i] = state
		return nil
	default:
		return fmt.Errorf("%w: cannot mark %s cell at %s as %s", ErrProtected, g.cells[i], c, state)
	}
}

// Passable reports whether a search may step onto c.
func (g *Grid) Passable(c Coordinate) bool {
	return g.InBounds(c) && g.cells[g.index(c)] != Wall
}

// CheckInvariant verifies that exactly one Start and one Target cell exist and
// that they sit at the recorded coordinates.
func (g *Grid) CheckInvariant() error {
	starts, targets := 0, 0
	for _, s := range g.cells {
		switch s {
		case Start:
			starts++
		case Target:
			targets++
		}
	}
	if starts != 1 || targets != 1 {
		return fmt.Errorf("%w: found %d start and %d target cells", ErrInvariantViolation, starts, targets)
	}
	if g.cells[g.index(g.start)] != Start || g.cells[g.index(g.target)] != Target {
		return fmt.Errorf("%w: start/target cells do not match recorded positions %s/%s", ErrInvariantViolation, g.start, g.target)
	}
	return nil
}

// Count returns the number of cells currently classified as state.
func (g *Grid) Count(state CellState) int {
	n := 0
	for _, s := range g.cells {
		if s == state {
			n++
		}
	}
	return n
}

// Cells returns a copy of the grid as rows of states, indexed [y][x].
func (g *Grid) Cells() [][]CellState {
	rows := make([][]CellState, g.height)
	for y := range rows {
		rows[y] = make([]CellState, g.width)
		copy(rows[y], g.cells[y*g.width:(y+1)*g.width])
	}
	return rows
}

// Walls returns the coordinates of all wall cells in row-major order.
func (g *Grid) Walls() []Coordinate {
	var walls []Coordinate
	for i, s := range g.cells {
		if s == Wall {
			walls = append(walls, Coordinate{X: i % g.width, Y: i / g.width})
		}
	}
	return walls
}
