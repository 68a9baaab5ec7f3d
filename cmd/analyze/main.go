// Command analyze prints quick, human-readable search statistics for the
// layout presets in the project's configs directory. For every preset it
// runs a search on the open board, then blocks each path cell in turn and
// reports how far the shortest path detours around it.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wricardo/gridpath/game/config"
	"github.com/wricardo/gridpath/game/engine"
	"github.com/wricardo/gridpath/game/grid"
)

// Detour records the search outcome with a single wall placed on a path cell
type Detour struct {
	Wall   grid.Coordinate
	Status engine.Status
	Length int
}

// Analysis summarizes the searches run for one preset
type Analysis struct {
	Name     string
	Width    int
	Height   int
	Distance int
	Length   int
	Explored int
	Dequeued int
	Rows     []string
	Detours  []Detour
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	manager, err := config.NewManager(configDir)
	if err != nil {
		fmt.Printf("Error opening presets: %v\n", err)
		os.Exit(1)
	}

	presets, err := manager.ListConfigs()
	if err != nil {
		fmt.Printf("Error listing presets: %v\n", err)
		os.Exit(1)
	}

	for _, preset := range presets {
		fmt.Printf("\n=== Analyzing %s ===\n", preset.Filename)

		layout, err := manager.LoadConfig(preset.Filename)
		if err != nil {
			fmt.Printf("Error loading preset: %v\n", err)
			continue
		}

		analysis, err := analyzeLayout(layout)
		if err != nil {
			fmt.Printf("Error analyzing preset: %v\n", err)
			continue
		}
		printAnalysis(os.Stdout, analysis)
	}
}

// analyzeLayout searches the open board and then each single-wall variant
func analyzeLayout(layout *engine.LayoutConfig) (*Analysis, error) {
	board, err := engine.NewBoard(layout)
	if err != nil {
		return nil, err
	}

	result, err := board.Search()
	if err != nil {
		return nil, err
	}

	state := board.GetState()
	analysis := &Analysis{
		Name:     layout.Name,
		Width:    layout.Width,
		Height:   layout.Height,
		Distance: engine.ManhattanDistance(layout.Start, layout.Target),
		Length:   result.Length,
		Explored: len(result.Explored),
		Dequeued: result.Dequeued,
		Rows:     engine.FormatRows(state.Cells),
	}

	for _, c := range result.Path {
		if _, err := board.ToggleWall(c); err != nil {
			return nil, fmt.Errorf("placing wall at %s: %w", c, err)
		}

		detour, err := board.Search()
		if err != nil {
			return nil, err
		}
		analysis.Detours = append(analysis.Detours, Detour{Wall: c, Status: detour.Status, Length: detour.Length})

		if _, err := board.ToggleWall(c); err != nil {
			return nil, fmt.Errorf("removing wall at %s: %w", c, err)
		}
	}

	return analysis, nil
}

// worstDetour returns the reachable detour with the longest path, or false
// when none was found
func (a *Analysis) worstDetour() (Detour, bool) {
	var worst Detour
	found := false
	for _, d := range a.Detours {
		if d.Status != engine.Found {
			continue
		}
		if !found || d.Length > worst.Length {
			worst = d
			found = true
		}
	}
	return worst, found
}

func printAnalysis(w io.Writer, a *Analysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", a.Width, a.Height)
	fmt.Fprintf(w, "Manhattan Distance: %d\n", a.Distance)
	fmt.Fprintf(w, "Path Length: %d\n", a.Length)
	fmt.Fprintf(w, "Explored: %d of %d cells (%d dequeued)\n", a.Explored, a.Width*a.Height, a.Dequeued)

	for _, row := range a.Rows {
		fmt.Fprintf(w, "  %s\n", row)
	}

	if len(a.Detours) == 0 {
		fmt.Fprintf(w, "✅ Start and target are adjacent, no path cell to block\n")
		return
	}

	blocked := 0
	for _, d := range a.Detours {
		if d.Status != engine.Found {
			blocked++
		}
	}

	if blocked > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d single walls disconnect start from target\n", blocked)
	} else {
		fmt.Fprintf(w, "✅ No single wall disconnects start from target\n")
	}
	if worst, ok := a.worstDetour(); ok {
		fmt.Fprintf(w, "Worst detour: wall at %s gives %d steps (+%d)\n", worst.Wall, worst.Length, worst.Length-a.Length)
	}

	var walls []string
	for _, d := range a.Detours {
		walls = append(walls, fmt.Sprintf("%s=%d", d.Wall, d.Length))
	}
	fmt.Fprintf(w, "Detours: %s\n", strings.Join(walls, " "))
}
