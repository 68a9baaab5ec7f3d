// Package engine provides the path search and board logic for the grid path finder.
//
// The engine package implements:
//   - Breadth-first search from the start cell to the target cell
//   - Parent-link path reconstruction and path marking on the grid
//   - Invalidation of stale search results after topology edits
//   - A Board that couples one grid with one search engine and applies edit commands
//   - Layout configuration validation
//
// Core Types:
//
// SearchEngine runs the search and owns the frontier, the parent side table,
// and the cached result. Board implements the Engine interface and is what
// sessions hold: every successful wall toggle or start/target move resets the
// search back to Idle before the next Search. BoardState is the snapshot handed
// to transports.
//
// Usage:
//
//	board, err := engine.NewBoard(engine.DefaultLayoutConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	board.ToggleWall(grid.Coordinate{X: 1, Y: 4})
//	result, err := board.Search()
//	if result.Status == engine.Found {
//		fmt.Println(result.Length, result.Path)
//	}
//
// Search Rules:
//
// Movement is 4-directional with unit cost. Neighbors are expanded in the
// fixed order left, right, down (y-1), up (y+1), which keeps exploration order
// reproducible. The target is recognised when it is dequeued, not when it is
// enqueued. An unreachable target is a normal outcome reported through Status.
package engine
