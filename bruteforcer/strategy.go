package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/wricardo/gridpath/game/engine"
	"github.com/wricardo/gridpath/game/grid"
	"github.com/wricardo/gridpath/game/service"
)

// WallStrategy picks random wall layouts for a preset. The same seed always
// yields the same sequence of layouts.
type WallStrategy struct {
	layout  *engine.LayoutConfig
	rng     *rand.Rand
	density float64
}

func NewWallStrategy(layout *engine.LayoutConfig, seed uint64, density float64) *WallStrategy {
	return &WallStrategy{
		layout:  layout,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		density: min(max(density, 0), 1),
	}
}

// Next returns distinct cells to wall off. Start and target are never chosen.
func (s *WallStrategy) Next() []grid.Coordinate {
	candidates := make([]grid.Coordinate, 0, s.layout.Width*s.layout.Height)
	for y := 0; y < s.layout.Height; y++ {
		for x := 0; x < s.layout.Width; x++ {
			c := grid.Coordinate{X: x, Y: y}
			if c != s.layout.Start && c != s.layout.Target {
				candidates = append(candidates, c)
			}
		}
	}

	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	n := int(float64(len(candidates)) * s.density)
	return candidates[:n]
}

// Verifier replays wall layouts on a local board and checks server results
// against it.
type Verifier struct {
	layout *engine.LayoutConfig
}

func NewVerifier(layout *engine.LayoutConfig) *Verifier {
	return &Verifier{layout: layout}
}

// Expected searches a local board with the given walls
func (v *Verifier) Expected(walls []grid.Coordinate) (*engine.Result, error) {
	board, err := engine.NewBoard(v.layout)
	if err != nil {
		return nil, err
	}
	for _, c := range walls {
		if _, err := board.ToggleWall(c); err != nil {
			return nil, fmt.Errorf("local wall %s: %w", c, err)
		}
	}
	return board.Search()
}

// Check compares a server search result with the local replay and validates
// the returned path against the wall set.
func (v *Verifier) Check(walls []grid.Coordinate, got *service.SearchResult) error {
	want, err := v.Expected(walls)
	if err != nil {
		return err
	}

	if got.Status != want.Status {
		return fmt.Errorf("status %s, want %s", got.Status, want.Status)
	}
	if got.Length != want.Length {
		return fmt.Errorf("length %d, want %d", got.Length, want.Length)
	}
	if got.ExploredCount != len(want.Explored) {
		return fmt.Errorf("explored %d, want %d", got.ExploredCount, len(want.Explored))
	}

	if got.Status == engine.Found {
		return v.checkPath(walls, got.Path)
	}
	return nil
}

// checkPath verifies that start, path and target form a chain of adjacent,
// in-bounds, wall-free cells
func (v *Verifier) checkPath(walls []grid.Coordinate, path []grid.Coordinate) error {
	blocked := make(map[grid.Coordinate]bool, len(walls))
	for _, c := range walls {
		blocked[c] = true
	}

	chain := make([]grid.Coordinate, 0, len(path)+2)
	chain = append(chain, v.layout.Start)
	chain = append(chain, path...)
	chain = append(chain, v.layout.Target)

	for i, c := range chain {
		if c.X < 0 || c.X >= v.layout.Width || c.Y < 0 || c.Y >= v.layout.Height {
			return fmt.Errorf("path cell %s out of bounds", c)
		}
		if blocked[c] {
			return fmt.Errorf("path crosses wall at %s", c)
		}
		if i > 0 && engine.ManhattanDistance(chain[i-1], c) != 1 {
			return fmt.Errorf("path jumps from %s to %s", chain[i-1], c)
		}
	}
	return nil
}
