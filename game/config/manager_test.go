package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/gridpath/game/engine"
	"github.com/wricardo/gridpath/game/grid"
)

const corridorHCL = `
name        = "Corridor"
description = "Narrow corridor"
width       = 12
height      = 4

start {
  x = 0
  y = 1
}

target {
  x = 11
  y = 2
}
`

func createValidConfig() *engine.LayoutConfig {
	return &engine.LayoutConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Width:       6,
		Height:      5,
		Start:       grid.Coordinate{X: 0, Y: 0},
		Target:      grid.Coordinate{X: 5, Y: 4},
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.LayoutConfig) {
	t.Helper()
	data, err := json.Marshal(config)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), data, 0644))
}

func writeRawFile(t *testing.T, dir, filename, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644))
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		defaultConfig := createValidConfig()
		defaultConfig.Name = "Default"
		writeConfigFile(t, dir, "default", defaultConfig)

		manager, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "Default", manager.GetDefault().Name)
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		assert.Error(t, err)
	})

	t.Run("empty directory falls back to built-in layout", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, engine.DefaultLayoutConfig(), manager.GetDefault())
	})

	t.Run("first preset when no default", func(t *testing.T) {
		dir := t.TempDir()
		writeRawFile(t, dir, "corridor.hcl", corridorHCL)
		writeConfigFile(t, dir, "open", createValidConfig())

		manager, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "Corridor", manager.GetDefault().Name)
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "open", createValidConfig())
	writeRawFile(t, dir, "corridor.hcl", corridorHCL)

	manager, err := NewManager(dir)
	require.NoError(t, err)

	t.Run("json by id", func(t *testing.T) {
		config, err := manager.LoadConfig("open")
		require.NoError(t, err)
		assert.Equal(t, createValidConfig(), config)
	})

	t.Run("json with extension", func(t *testing.T) {
		config, err := manager.LoadConfig("open.json")
		require.NoError(t, err)
		assert.Equal(t, createValidConfig(), config)
	})

	t.Run("hcl by id", func(t *testing.T) {
		config, err := manager.LoadConfig("corridor")
		require.NoError(t, err)
		assert.Equal(t, &engine.LayoutConfig{
			Name:        "Corridor",
			Description: "Narrow corridor",
			Width:       12,
			Height:      4,
			Start:       grid.Coordinate{X: 0, Y: 1},
			Target:      grid.Coordinate{X: 11, Y: 2},
		}, config)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := manager.LoadConfig("nope")
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})
}

func TestManager_LoadConfig_SameIDDifferentFormats(t *testing.T) {
	dir := t.TempDir()
	fromJSON := createValidConfig()
	fromJSON.Name = "From JSON"
	writeConfigFile(t, dir, "corridor", fromJSON)
	writeRawFile(t, dir, "corridor.hcl", corridorHCL)

	manager, err := NewManager(dir)
	require.NoError(t, err)

	hcl, err := manager.LoadConfig("corridor.hcl")
	require.NoError(t, err)
	assert.Equal(t, "Corridor", hcl.Name)

	js, err := manager.LoadConfig("corridor.json")
	require.NoError(t, err)
	assert.Equal(t, "From JSON", js.Name)

	bare, err := manager.LoadConfig("corridor")
	require.NoError(t, err)
	assert.Equal(t, "From JSON", bare.Name, "bare id prefers JSON")

	again, err := manager.LoadConfig("corridor.hcl")
	require.NoError(t, err)
	assert.Same(t, hcl, again)
}

func TestManager_LoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := createValidConfig()
	bad.Target = bad.Start
	writeConfigFile(t, dir, "same-cell", bad)

	outside := createValidConfig()
	outside.Start = grid.Coordinate{X: 6, Y: 0}
	writeConfigFile(t, dir, "outside", outside)

	writeRawFile(t, dir, "broken.json", "{not json")
	writeRawFile(t, dir, "broken.hcl", "name = ")
	writeRawFile(t, dir, "noblock.hcl", "name = \"x\"\nwidth = 4\nheight = 4\n")

	manager, err := NewManager(dir)
	require.NoError(t, err)

	tests := []struct {
		name  string
		extra error
	}{
		{"same-cell", grid.ErrInvalidConfiguration},
		{"outside", grid.ErrInvalidCoordinate},
		{"broken.json", nil},
		{"broken.hcl", nil},
		{"noblock", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.LoadConfig(tt.name)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "expected ErrInvalidConfig, got %v", err)
			if tt.extra != nil {
				assert.ErrorIs(t, err, tt.extra)
			}
		})
	}

	configs, err := manager.ListConfigs()
	require.NoError(t, err)
	assert.Empty(t, configs, "invalid presets are skipped")
	assert.Equal(t, engine.DefaultLayoutConfig(), manager.GetDefault())
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "open", createValidConfig())
	writeRawFile(t, dir, "corridor.hcl", corridorHCL)
	writeRawFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0755))

	manager, err := NewManager(dir)
	require.NoError(t, err)

	configs, err := manager.ListConfigs()
	require.NoError(t, err)
	require.Len(t, configs, 2)

	assert.Equal(t, "corridor", configs[0].ConfigID)
	assert.Equal(t, "corridor.hcl", configs[0].Filename)
	assert.Equal(t, 12, configs[0].Width)
	assert.Equal(t, grid.Coordinate{X: 11, Y: 2}, configs[0].Target)

	assert.Equal(t, "open", configs[1].ConfigID)
	assert.Equal(t, "Test Config", configs[1].Name)
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	require.NoError(t, err)

	config := createValidConfig()
	config.Name = "Saved"
	require.NoError(t, manager.SaveConfig("saved", config))

	_, err = os.Stat(filepath.Join(dir, "saved.json"))
	require.NoError(t, err)

	withExt, err := manager.LoadConfig("saved.json")
	require.NoError(t, err)
	assert.Same(t, config, withExt)

	require.NoError(t, manager.RefreshCache())
	loaded, err := manager.LoadConfig("saved")
	require.NoError(t, err)
	assert.Equal(t, config, loaded)

	invalid := createValidConfig()
	invalid.Width = 1
	assert.ErrorIs(t, manager.SaveConfig("bad", invalid), ErrInvalidConfig)
	assert.ErrorIs(t, manager.SaveConfig("../escape", config), ErrInvalidConfig)
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "default", createValidConfig())
	writeRawFile(t, dir, "corridor.hcl", corridorHCL)

	manager, err := NewManager(dir)
	require.NoError(t, err)
	assert.Equal(t, "Test Config", manager.GetDefault().Name)

	require.NoError(t, manager.SetDefault("corridor"))
	assert.Equal(t, "Corridor", manager.GetDefault().Name)

	assert.ErrorIs(t, manager.SetDefault("missing"), ErrConfigNotFound)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 5; i++ {
		config := createValidConfig()
		config.Name = fmt.Sprintf("Config%d", i)
		writeConfigFile(t, dir, fmt.Sprintf("config%d", i), config)
	}

	manager, err := NewManager(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := manager.LoadConfig(fmt.Sprintf("config%d", id%5+1)); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
	assert.Equal(t, 5, manager.Count())
}

// Count returns the number of cached presets
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}
