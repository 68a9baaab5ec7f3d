// Package config provides layout preset management for the grid path finder.
//
// The config package handles:
//   - Loading layout presets from JSON and HCL files
//   - Preset validation through engine.ValidateLayoutConfig
//   - Default preset management
//   - Preset discovery and listing
//
// Preset Format:
//
// A preset names a board size and the initial start and target cells. JSON
// presets mirror engine.LayoutConfig:
//
//	{"name": "corridor", "width": 12, "height": 4,
//	 "start": {"x": 0, "y": 1}, "target": {"x": 11, "y": 2}}
//
// HCL presets use blocks for the two cells:
//
//	name   = "corridor"
//	width  = 12
//	height = 4
//	start {
//	  x = 0
//	  y = 1
//	}
//	target {
//	  x = 11
//	  y = 2
//	}
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	layout, err := manager.LoadConfig("corridor")
//	defaultLayout := manager.GetDefault()
//	presets, err := manager.ListConfigs()
//
// When the directory holds a "default" preset it becomes the default;
// otherwise the first valid preset is used, and an empty directory falls back
// to engine.DefaultLayoutConfig.
package config
