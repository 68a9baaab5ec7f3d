// Command validate provides a small CLI that validates layout presets
// (.json and .hcl) in a presets directory, ../configs by default. It checks:
//   - the file parses and decodes into a layout
//   - width and height are within the supported grid sizes
//   - start and target are in bounds and distinct
//   - a search on the open board finds a path whose length equals the
//     Manhattan distance between start and target
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/gridpath/game/config"
	"github.com/wricardo/gridpath/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// presetFiles lists the preset files in dir, sorted by name
func presetFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.hcl"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// validatePreset loads a single preset through the config manager and checks
// that an open board built from it behaves.
func validatePreset(manager *config.Manager, filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	layout, err := manager.LoadConfig(result.File)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	searchResult := validateSearch(layout)
	if !searchResult.Valid {
		result.Valid = false
		result.Errors = append(result.Errors, searchResult.Errors...)
		return result
	}

	// Add informational data
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", layout.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", layout.Width, layout.Height))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Start: %s", layout.Start))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Target: %s", layout.Target))
	result.Errors = append(result.Errors, searchResult.Errors...)

	return result
}

// validateSearch runs a search on an open board built from layout. With no
// walls the target is always reachable and the shortest path length equals
// the Manhattan distance.
func validateSearch(layout *engine.LayoutConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	board, err := engine.NewBoard(layout)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot build board: %v", err))
		return result
	}

	res, err := board.Search()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Search failed: %v", err))
		return result
	}

	if res.Status != engine.Found {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Search ended %s on an open board", res.Status))
		return result
	}

	distance := engine.ManhattanDistance(layout.Start, layout.Target)
	if res.Length != distance {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Path length %d does not match Manhattan distance %d", res.Length, distance))
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Path: %d steps, %d of %d cells explored",
		res.Length, len(res.Explored), layout.Width*layout.Height))
	return result
}

// main scans the presets directory and validates each file, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	manager, err := config.NewManager(configDir)
	if err != nil {
		fmt.Printf("Error opening presets: %v\n", err)
		os.Exit(1)
	}

	files, err := presetFiles(configDir)
	if err != nil {
		fmt.Printf("Error finding preset files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validatePreset(manager, file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All presets are valid!")
	} else {
		fmt.Println("❌ Some presets have errors")
		os.Exit(1)
	}
}
