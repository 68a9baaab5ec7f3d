package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/wricardo/gridpath/game/engine"
	"github.com/wricardo/gridpath/game/grid"
	"github.com/wricardo/gridpath/game/service"
)

var (
	ErrConfigNotFound = fmt.Errorf("configuration %w", service.ErrNotFound)
	ErrInvalidConfig  = fmt.Errorf("preset: %w", grid.ErrInvalidConfiguration)
)

// Preset file extensions in lookup order
const (
	extJSON = ".json"
	extHCL  = ".hcl"
)

// hclLayoutFile is the decoding target for HCL presets:
//
//	name        = "corridor"
//	description = "Narrow corridor"
//	width       = 12
//	height      = 4
//	start {
//	  x = 0
//	  y = 1
//	}
//	target {
//	  x = 11
//	  y = 2
//	}
type hclLayoutFile struct {
	Name        string   `hcl:"name"`
	Description string   `hcl:"description,optional"`
	Width       int      `hcl:"width"`
	Height      int      `hcl:"height"`
	Start       hclPoint `hcl:"start,block"`
	Target      hclPoint `hcl:"target,block"`
}

type hclPoint struct {
	X int `hcl:"x"`
	Y int `hcl:"y"`
}

// Manager handles layout preset loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.LayoutConfig
	configs       map[string]*engine.LayoutConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.LayoutConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a preset by name. The name may carry a .json or .hcl
// extension; without one, JSON is tried before HCL.
func (m *Manager) LoadConfig(name string) (*engine.LayoutConfig, error) {
	// "x.json" and "x.hcl" are distinct presets and cache separately.
	key := name

	m.mu.RLock()
	// Check cache first
	if config, exists := m.configs[key]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[key]; exists {
		return config, nil
	}

	config, err := m.readConfig(name)
	if err != nil {
		return nil, err
	}

	if err := engine.ValidateLayoutConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	m.configs[key] = config
	return config, nil
}

// readConfig finds the preset file for name and decodes it
func (m *Manager) readConfig(name string) (*engine.LayoutConfig, error) {
	candidates := []string{name}
	if ext := filepath.Ext(name); ext != extJSON && ext != extHCL {
		candidates = []string{name + extJSON, name + extHCL}
	}

	for _, filename := range candidates {
		path := filepath.Join(m.configDir, filename)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}

		if filepath.Ext(filename) == extHCL {
			return decodeHCL(path)
		}
		return decodeJSON(path)
	}

	return nil, ErrConfigNotFound
}

func decodeJSON(path string) (*engine.LayoutConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config engine.LayoutConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}
	return &config, nil
}

func decodeHCL(path string) (*engine.LayoutConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL file %s: %w", ErrInvalidConfig, path, diags)
	}

	var parsed hclLayoutFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL file %s: %w", ErrInvalidConfig, path, diags)
	}

	return &engine.LayoutConfig{
		Name:        parsed.Name,
		Description: parsed.Description,
		Width:       parsed.Width,
		Height:      parsed.Height,
		Start:       grid.Coordinate{X: parsed.Start.X, Y: parsed.Start.Y},
		Target:      grid.Coordinate{X: parsed.Target.X, Y: parsed.Target.Y},
	}, nil
}

// ListConfigs returns information about all available presets, sorted by id.
// Invalid preset files are skipped.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != extJSON && ext != extHCL) {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ext)
		if seen[id] {
			continue
		}

		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			continue
		}
		seen[id] = true

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			Width:       config.Width,
			Height:      config.Height,
			Start:       config.Start,
			Target:      config.Target,
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.LayoutConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops all cached presets and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.LayoutConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// loadDefaultConfig picks "default" if present, then the first valid preset,
// then the built-in layout.
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig("default")
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			config = engine.DefaultLayoutConfig()
		} else if config, err = m.LoadConfig(configs[0].Filename); err != nil {
			config = engine.DefaultLayoutConfig()
		}
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
	return nil
}

// SaveConfig validates a preset and writes it as JSON
func (m *Manager) SaveConfig(name string, config *engine.LayoutConfig) error {
	if err := engine.ValidateLayoutConfig(config); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	key := presetID(name)
	if key == "" || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: invalid preset name %q", ErrInvalidConfig, name)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(m.configDir, key+extJSON)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Both names resolve to the file just written.
	m.mu.Lock()
	m.configs[key] = config
	m.configs[key+extJSON] = config
	m.mu.Unlock()

	return nil
}

// presetID strips a known preset extension from name
func presetID(name string) string {
	switch filepath.Ext(name) {
	case extJSON, extHCL:
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
