package engine

import (
	"errors"
	"fmt"

	"github.com/wricardo/gridpath/game/grid"
)

// ErrNilGrid is returned when a search is run without a grid.
var ErrNilGrid = errors.New("engine: grid is nil")

// neighborOffsets is the fixed expansion order: left, right, down, up.
// Down is y-1 and up is y+1.
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// SearchEngine runs breadth-first search over a grid and caches the outcome
// until it is reset or the grid's topology changes.
type SearchEngine struct {
	status   Status
	frontier []grid.Coordinate
	visited  map[grid.Coordinate]bool
	parents  map[grid.Coordinate]grid.Coordinate
	explored []grid.Coordinate
	path     []grid.Coordinate
	dequeued int

	// grid and version identify the topology the cached result belongs to
	grid    *grid.Grid
	version uint64
}

// NewSearchEngine creates an idle search engine
func NewSearchEngine() *SearchEngine {
	return &SearchEngine{
		status:  Idle,
		visited: make(map[grid.Coordinate]bool),
		parents: make(map[grid.Coordinate]grid.Coordinate),
	}
}

// Status returns the current search status
func (e *SearchEngine) Status() Status {
	return e.status
}

// Stale reports whether a finished result was computed against a topology
// that has since changed.
func (e *SearchEngine) Stale(g *grid.Grid) bool {
	return e.status.Done() && (e.grid != g || e.version != g.Version())
}

// Reset discards the frontier, parent links and cached path, clears the
// search overlay from g, and returns the engine to Idle. g may be nil.
func (e *SearchEngine) Reset(g *grid.Grid) {
	e.status = Idle
	e.frontier = nil
	clear(e.visited)
	clear(e.parents)
	e.explored = nil
	e.path = nil
	e.dequeued = 0
	e.grid = nil
	e.version = 0

	if g != nil {
		g.ClearTransient()
	}
}

// Run searches g from its start cell to its target cell. Calling Run again
// after a Found or Unreachable outcome returns the cached result without
// searching, unless the topology changed in between, in which case the engine
// resets itself first. A grid with a broken start/target invariant fails with
// grid.ErrInvariantViolation.
func (e *SearchEngine) Run(g *grid.Grid) (*Result, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if e.status.Done() {
		if !e.Stale(g) {
			return e.result(), nil
		}
		e.Reset(g)
	}
	if err := g.CheckInvariant(); err != nil {
		return nil, err
	}

	g.ClearTransient()
	e.grid = g
	e.version = g.Version()
	e.status = Searching

	start, target := g.Start(), g.Target()
	e.visited[start] = true
	e.frontier = append(e.frontier[:0], start)

	for len(e.frontier) > 0 {
		current := e.frontier[0]
		e.frontier = e.frontier[1:]
		e.dequeued++

		if current == target {
			e.frontier = nil
			if err := e.reconstruct(g, start, target); err != nil {
				e.Reset(g)
				return nil, err
			}
			e.status = Found
			return e.result(), nil
		}

		if err := e.expand(g, current); err != nil {
			e.Reset(g)
			return nil, err
		}
	}

	e.status = Unreachable
	return e.result(), nil
}

// expand enqueues every unvisited, passable neighbor of c, records c as its
// parent, and marks free neighbors Explored.
func (e *SearchEngine) expand(g *grid.Grid, c grid.Coordinate) error {
	for _, d := range neighborOffsets {
		n := c.Add(d[0], d[1])
		if !g.Passable(n) || e.visited[n] {
			continue
		}

		e.visited[n] = true
		e.parents[n] = c
		e.explored = append(e.explored, n)
		e.frontier = append(e.frontier, n)

		state, err := g.CellAt(n)
		if err != nil {
			return err
		}
		if state == grid.Free {
			if err := g.Mark(n, grid.Explored); err != nil {
				return err
			}
		}
	}
	return nil
}

// reconstruct walks parent links back from target, collects the interior
// cells, reverses them into start-to-target order and marks them Path.
func (e *SearchEngine) reconstruct(g *grid.Grid, start, target grid.Coordinate) error {
	limit := g.Width() * g.Height()
	path := []grid.Coordinate{}

	cur, ok := e.parents[target]
	if !ok {
		return fmt.Errorf("%w: target %s has no parent", grid.ErrInvariantViolation, target)
	}
	for cur != start {
		path = append(path, cur)
		if len(path) > limit {
			return fmt.Errorf("%w: parent chain from %s does not reach start", grid.ErrInvariantViolation, target)
		}
		cur, ok = e.parents[cur]
		if !ok {
			return fmt.Errorf("%w: broken parent chain at %s", grid.ErrInvariantViolation, path[len(path)-1])
		}
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	for _, c := range path {
		if err := g.Mark(c, grid.Path); err != nil {
			return err
		}
	}

	e.path = path
	return nil
}

// Parent returns the cell from which c was discovered during the last run.
// The start cell and undiscovered cells have no parent.
func (e *SearchEngine) Parent(c grid.Coordinate) (grid.Coordinate, bool) {
	p, ok := e.parents[c]
	return p, ok
}

// Path returns a copy of the interior path cells of the last successful run
func (e *SearchEngine) Path() []grid.Coordinate {
	if e.path == nil {
		return nil
	}
	return append([]grid.Coordinate(nil), e.path...)
}

// Explored returns a copy of the discovered cells in enqueue order
func (e *SearchEngine) Explored() []grid.Coordinate {
	if e.explored == nil {
		return nil
	}
	return append([]grid.Coordinate(nil), e.explored...)
}

// result builds a Result snapshot from the engine state
func (e *SearchEngine) result() *Result {
	r := &Result{
		Status:   e.status,
		Path:     e.Path(),
		Explored: e.Explored(),
		Dequeued: e.dequeued,
	}
	if e.status == Found {
		r.Length = len(e.path) + 1
		if r.Path == nil {
			r.Path = []grid.Coordinate{}
		}
	}
	return r
}
