package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridgames/snake-game/game/engine"
)

func writeTestConfig(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func testBoardConfig(name string) *engine.GameConfig {
	config := engine.DefaultGameConfig()
	config.Name = name
	return config
}

func TestNewManager(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "classic", testBoardConfig("classic"))

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	def := manager.GetDefault()
	if def == nil || def.Name != "classic" {
		t.Errorf("Expected classic as default, got %+v", def)
	}
}

func TestNewManager_MissingDirectory(t *testing.T) {
	if _, err := NewManager("/nonexistent/path"); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestNewManager_FallsBackToBuiltinDefault(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	def := manager.GetDefault()
	if def == nil {
		t.Fatal("Expected a built-in default config")
	}
	if err := engine.ValidateGameConfig(def); err != nil {
		t.Errorf("Expected built-in default to validate, got %v", err)
	}
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "classic", testBoardConfig("classic"))

	wrap := testBoardConfig("toroidal")
	wrap.BoundaryMode = engine.BoundaryWrap
	writeTestConfig(t, dir, "wrap", wrap)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config, err := manager.LoadConfig("wrap")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.BoundaryMode != engine.BoundaryWrap {
		t.Errorf("Expected wrap mode, got %q", config.BoundaryMode)
	}

	// Second load comes from the cache and returns the same pointer.
	again, err := manager.LoadConfig("wrap")
	if err != nil {
		t.Fatalf("Failed to load cached config: %v", err)
	}
	if again != config {
		t.Error("Expected cached config to be reused")
	}

	if _, err := manager.LoadConfig("missing"); err != ErrConfigNotFound {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestManager_LoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "classic", testBoardConfig("classic"))

	bad := testBoardConfig("broken")
	bad.CellSize = 7 // width not a multiple
	writeTestConfig(t, dir, "broken", bad)

	manager, _ := NewManager(dir)
	if _, err := manager.LoadConfig("broken"); err == nil {
		t.Error("Expected validation error for broken config")
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "classic", testBoardConfig("classic"))

	wall := testBoardConfig("walled")
	wall.BoundaryMode = engine.BoundaryWall
	writeTestConfig(t, dir, "wall", wall)

	// Invalid configs are skipped, not surfaced.
	os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644)

	manager, _ := NewManager(dir)
	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}

	if len(configs) != 2 {
		t.Fatalf("Expected 2 configs, got %d", len(configs))
	}

	byID := make(map[string]bool)
	for _, c := range configs {
		byID[c.ConfigID] = true
		if c.GridColumns == 0 || c.GridRows == 0 {
			t.Errorf("Config %s missing grid dimensions", c.ConfigID)
		}
	}
	if !byID["classic"] || !byID["wall"] {
		t.Errorf("Expected classic and wall configs, got %v", byID)
	}
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "classic", testBoardConfig("classic"))
	writeTestConfig(t, dir, "other", testBoardConfig("other"))

	manager, _ := NewManager(dir)
	if err := manager.SetDefault("other"); err != nil {
		t.Fatalf("Failed to set default: %v", err)
	}
	if manager.GetDefault().Name != "other" {
		t.Errorf("Expected 'other' as default, got %q", manager.GetDefault().Name)
	}

	if err := manager.SetDefault("missing"); err == nil {
		t.Error("Expected error for missing config")
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "classic", testBoardConfig("classic"))
	manager, _ := NewManager(dir)

	saved := testBoardConfig("custom")
	saved.FoodSeed = 7
	if err := manager.SaveConfig("custom", saved); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := manager.LoadConfig("custom")
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.FoodSeed != 7 {
		t.Errorf("Expected saved food seed 7, got %d", loaded.FoodSeed)
	}

	invalid := testBoardConfig("nope")
	invalid.Width = 0
	if err := manager.SaveConfig("nope", invalid); err == nil {
		t.Error("Expected validation error on save")
	}
}

func TestManager_RefreshCache(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "classic", testBoardConfig("classic"))
	manager, _ := NewManager(dir)

	before, _ := manager.LoadConfig("classic")

	// Edit the file behind the cache.
	edited := testBoardConfig("classic")
	edited.Description = "edited on disk"
	writeTestConfig(t, dir, "classic", edited)

	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("Failed to refresh cache: %v", err)
	}

	after, _ := manager.LoadConfig("classic")
	if after == before {
		t.Error("Expected refresh to drop the cached pointer")
	}
	if after.Description != "edited on disk" {
		t.Errorf("Expected edited description, got %q", after.Description)
	}
}
