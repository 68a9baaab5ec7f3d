// Package grid holds the cell layout that path searches run over.
//
// A Grid is a fixed-size rectangle of cells. Every cell carries exactly one
// classification:
//   - Free, Wall, Start, Target make up the topology of the grid
//   - Explored and Path are a transient overlay written by a search
//
// Exactly one Start and exactly one Target exist at all times. Every mutating
// call checks this before returning.
//
// Topology edits (ToggleWall, MoveStart, MoveTarget) advance a version counter.
// Searches compare that counter against the one their result was computed
// with, so a path computed for an older topology is never reported as current.
//
// Usage:
//
//	g, err := grid.New(20, 15, grid.Coordinate{X: 0, Y: 3}, grid.Coordinate{X: 0, Y: 5})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if _, err := g.ToggleWall(grid.Coordinate{X: 4, Y: 4}); errors.Is(err, grid.ErrProtected) {
//		// start or target cell, ignore the click
//	}
//
//	state, _ := g.CellAt(grid.Coordinate{X: 4, Y: 4}) // grid.Wall
//
// The grid knows nothing about search machinery. Parent links and the
// frontier belong to the search engine.
package grid
