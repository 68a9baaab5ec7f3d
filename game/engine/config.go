package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wricardo/gridpath/game/grid"
)

// ValidateLayoutConfig validates a layout configuration for correctness
func ValidateLayoutConfig(config *LayoutConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config validation: config is nil", grid.ErrInvalidConfiguration)
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("%w: config validation: name is required", grid.ErrInvalidConfiguration)
	}

	// Validate grid size
	if config.Width < MinGridSize || config.Width > MaxGridSize {
		return fmt.Errorf("%w: config validation: width must be between %d and %d, got %d",
			grid.ErrInvalidConfiguration, MinGridSize, MaxGridSize, config.Width)
	}
	if config.Height < MinGridSize || config.Height > MaxGridSize {
		return fmt.Errorf("%w: config validation: height must be between %d and %d, got %d",
			grid.ErrInvalidConfiguration, MinGridSize, MaxGridSize, config.Height)
	}

	// Validate start and target placement
	inBounds := func(c grid.Coordinate) bool {
		return c.X >= 0 && c.X < config.Width && c.Y >= 0 && c.Y < config.Height
	}
	if !inBounds(config.Start) {
		return fmt.Errorf("%w: %w: config validation: start %s is outside the %dx%d grid",
			grid.ErrInvalidConfiguration, grid.ErrInvalidCoordinate, config.Start, config.Width, config.Height)
	}
	if !inBounds(config.Target) {
		return fmt.Errorf("%w: %w: config validation: target %s is outside the %dx%d grid",
			grid.ErrInvalidConfiguration, grid.ErrInvalidCoordinate, config.Target, config.Width, config.Height)
	}
	if config.Start == config.Target {
		return fmt.Errorf("%w: config validation: start and target must differ, both are %s",
			grid.ErrInvalidConfiguration, config.Start)
	}

	return nil
}

// DefaultLayoutConfig returns the built-in layout: a 640x480 screen of 32px
// cells with start at (0,3) and target at (0,5).
func DefaultLayoutConfig() *LayoutConfig {
	return &LayoutConfig{
		Name:        "default",
		Description: "Open 20x15 board, start and target two cells apart on the left edge",
		Width:       DefaultScreenWidth / DefaultCellSize,
		Height:      DefaultScreenHeight / DefaultCellSize,
		Start:       grid.Coordinate{X: 0, Y: 3},
		Target:      grid.Coordinate{X: 0, Y: 5},
	}
}

// NewGridFromConfig creates an empty grid for the provided configuration
func NewGridFromConfig(config *LayoutConfig) (*grid.Grid, error) {
	if config == nil {
		config = DefaultLayoutConfig()
	}
	return grid.New(config.Width, config.Height, config.Start, config.Target)
}

// LoadLayoutConfig loads a layout configuration from a JSON file
func LoadLayoutConfig(filename string) (*LayoutConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config LayoutConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse layout file '%s': %w", filename, err)
	}

	if err := ValidateLayoutConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
