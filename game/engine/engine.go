package engine

import (
	"fmt"
	"time"

	"github.com/wricardo/gridpath/game/grid"
)

// Engine provides the main interface for board operations
type Engine interface {
	// Edit commands
	ToggleWall(c grid.Coordinate) (grid.CellState, error)
	MoveStart(c grid.Coordinate) error
	MoveTarget(c grid.Coordinate) error

	// Search commands
	Search() (*Result, error)
	Clear()
	Reset() error

	// Queries
	CellAt(c grid.Coordinate) (grid.CellState, error)
	Status() Status
	GetState() *BoardState
	GetConfig() *LayoutConfig

	// History
	GetEditHistory() []EditHistoryEntry
	GetLastEdit() *EditHistoryEntry
}

// Board couples one grid with one search engine. Every successful topology
// edit drives the search engine back to Idle before it returns.
type Board struct {
	grid    *grid.Grid
	search  *SearchEngine
	config  *LayoutConfig
	message string

	history    []EditHistoryEntry
	totalEdits int
}

// NewBoard creates a board with the provided layout configuration
func NewBoard(config *LayoutConfig) (*Board, error) {
	if err := ValidateLayoutConfig(config); err != nil {
		return nil, err
	}

	g, err := NewGridFromConfig(config)
	if err != nil {
		return nil, err
	}

	return &Board{
		grid:    g,
		search:  NewSearchEngine(),
		config:  config,
		message: "Place walls, then search for a path",
		history: []EditHistoryEntry{},
	}, nil
}

// NewBoardWithDefaults creates a board with the default layout
func NewBoardWithDefaults() *Board {
	board, err := NewBoard(DefaultLayoutConfig())
	if err != nil {
		// the default layout is valid by construction
		panic(err)
	}
	return board
}

// Grid returns the underlying grid
func (b *Board) Grid() *grid.Grid {
	return b.grid
}

// ToggleWall flips a wall at c and invalidates the current search result
func (b *Board) ToggleWall(c grid.Coordinate) (grid.CellState, error) {
	state, err := b.grid.ToggleWall(c)
	if err == nil {
		b.invalidate()
		if state == grid.Wall {
			b.message = fmt.Sprintf("Wall placed at %s", c)
		} else {
			b.message = fmt.Sprintf("Wall removed at %s", c)
		}
	} else {
		b.message = fmt.Sprintf("Can't toggle wall at %s", c)
	}

	b.record(ActionToggleWall, &c, err)
	return state, err
}

// MoveStart relocates the start cell and invalidates the current search result
func (b *Board) MoveStart(c grid.Coordinate) error {
	err := b.grid.MoveStart(c)
	if err == nil {
		b.invalidate()
		b.message = fmt.Sprintf("Start moved to %s", c)
	} else {
		b.message = fmt.Sprintf("Can't move start to %s", c)
	}

	b.record(ActionMoveStart, &c, err)
	return err
}

// MoveTarget relocates the target cell and invalidates the current search result
func (b *Board) MoveTarget(c grid.Coordinate) error {
	err := b.grid.MoveTarget(c)
	if err == nil {
		b.invalidate()
		b.message = fmt.Sprintf("Target moved to %s", c)
	} else {
		b.message = fmt.Sprintf("Can't move target to %s", c)
	}

	b.record(ActionMoveTarget, &c, err)
	return err
}

// Search runs the search engine. A finished result on an unchanged board is
// returned from cache.
func (b *Board) Search() (*Result, error) {
	result, err := b.search.Run(b.grid)
	if err != nil {
		b.message = fmt.Sprintf("Search failed: %v", err)
		b.record(ActionSearch, nil, err)
		return nil, err
	}

	switch result.Status {
	case Found:
		b.message = fmt.Sprintf("Path found: %d steps, %d cells explored", result.Length, len(result.Explored))
	case Unreachable:
		b.message = fmt.Sprintf("Target unreachable after exploring %d cells", len(result.Explored))
	}

	b.record(ActionSearch, nil, nil)
	return result, nil
}

// Clear forgets the last search without touching walls, start or target
func (b *Board) Clear() {
	b.invalidate()
	b.message = "Search cleared"
	b.record(ActionClear, nil, nil)
}

// Reset restores the layout from the board configuration: no walls, start and
// target back at their configured cells. History is preserved.
func (b *Board) Reset() error {
	g, err := NewGridFromConfig(b.config)
	if err != nil {
		b.record(ActionReset, nil, err)
		return err
	}

	b.search.Reset(nil)
	b.grid = g
	b.message = "Board reset"
	b.record(ActionReset, nil, nil)
	return nil
}

// CellAt returns the classification of the cell at c
func (b *Board) CellAt(c grid.Coordinate) (grid.CellState, error) {
	return b.grid.CellAt(c)
}

// Parent returns the cell that discovered c in the last search
func (b *Board) Parent(c grid.Coordinate) (grid.Coordinate, bool) {
	return b.search.Parent(c)
}

// Status returns the search status
func (b *Board) Status() Status {
	return b.search.Status()
}

// GetConfig returns the board configuration
func (b *Board) GetConfig() *LayoutConfig {
	return b.config
}

// GetState builds a snapshot of the board
func (b *Board) GetState() *BoardState {
	path := b.search.Path()
	length := 0
	if b.search.Status() == Found {
		length = len(path) + 1
	}

	return &BoardState{
		Width:         b.grid.Width(),
		Height:        b.grid.Height(),
		Cells:         b.grid.Cells(),
		Start:         b.grid.Start(),
		Target:        b.grid.Target(),
		Status:        b.search.Status(),
		Path:          path,
		PathLength:    length,
		ExploredCount: len(b.search.explored),
		WallCount:     b.grid.Count(grid.Wall),
		Version:       b.grid.Version(),
		Message:       b.message,
		ConfigName:    b.config.Name,
		TotalEdits:    b.totalEdits,
	}
}

// GetEditHistory returns the complete edit history
func (b *Board) GetEditHistory() []EditHistoryEntry {
	return b.history
}

// GetLastEdit returns the last edit, or nil if none
func (b *Board) GetLastEdit() *EditHistoryEntry {
	if len(b.history) == 0 {
		return nil
	}
	return &b.history[len(b.history)-1]
}

// invalidate clears the search overlay and returns the search engine to Idle
func (b *Board) invalidate() {
	b.search.Reset(b.grid)
}

// record appends a command to the history
func (b *Board) record(action string, c *grid.Coordinate, err error) {
	entry := EditHistoryEntry{
		Action:     action,
		Success:    err == nil,
		Status:     b.search.Status(),
		Timestamp:  time.Now().Unix(),
		EditNumber: b.totalEdits + 1,
	}
	if c != nil {
		coord := *c
		entry.Coordinate = &coord
	}
	if err != nil {
		entry.Error = err.Error()
	}

	b.history = append(b.history, entry)
	b.totalEdits++
}
