// Command validate provides a small CLI that validates board configuration
// JSON files in a configs directory. It checks:
//   - JSON structure and required fields
//   - Geometry: cell-aligned dimensions, start cell, and grid size limits
//   - Initial body fit: the seeded snake must lie fully on the board
//   - Boundary policy: valid mode and a cell-aligned gate for rail boards
//   - Required message keys (including the %d score placeholder)
//
// It also prints warnings for layouts that are legal but likely unintended,
// such as a rail board whose start row is the gate row.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridgames/snake-game/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Notes contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Notes    []string
	Warnings []string
}

// validateConfig loads and validates a single configuration JSON file.
// Structural checks are delegated to the engine validator; this adds
// playability warnings on top.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, err.Error())
		return result
	}

	result.Warnings = playabilityWarnings(&config)

	result.Notes = append(result.Notes, fmt.Sprintf("✓ Name: %s", config.Name))
	result.Notes = append(result.Notes, fmt.Sprintf("✓ Grid: %dx%d cells of %dpx",
		config.GridColumns(), config.GridRows(), config.CellSize))
	result.Notes = append(result.Notes, fmt.Sprintf("✓ Start: (%d,%d) heading %s, length %d",
		config.StartX, config.StartY, config.StartHeading, config.InitialLength))
	result.Notes = append(result.Notes, fmt.Sprintf("✓ Boundary: %s", config.BoundaryMode))
	if config.BoundaryMode == engine.BoundaryRail {
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Gate: row %d, col %d", config.GateRow, config.GateCol))
	}
	if config.FoodSeed != 0 {
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Food seed: %d (deterministic spawns)", config.FoodSeed))
	}

	return result
}

// playabilityWarnings flags legal configurations that are probably traps:
// the board still validates, but play starts in a dangerous spot.
func playabilityWarnings(config *engine.GameConfig) []string {
	var warnings []string

	if config.BoundaryMode == engine.BoundaryRail {
		if config.StartY == config.GateRow {
			warnings = append(warnings, fmt.Sprintf(
				"start row %d is the gate row; a straight run off the board ends the game", config.StartY))
		}
		if config.StartX == config.GateCol {
			warnings = append(warnings, fmt.Sprintf(
				"start column %d is the gate column; a straight vertical run off the board ends the game", config.StartX))
		}
	}

	if config.BoundaryMode == engine.BoundaryWall {
		head := engine.InitGameStateFromConfig(config).Head()
		var run int
		switch config.StartHeading {
		case engine.Right:
			run = (config.Width - head.X) / config.CellSize
		case engine.Left:
			run = head.X/config.CellSize + 1
		case engine.Down:
			run = (config.Height - head.Y) / config.CellSize
		case engine.Up:
			run = head.Y/config.CellSize + 1
		}
		if run <= 3 {
			warnings = append(warnings, fmt.Sprintf(
				"only %d cells of room along the start heading before the wall", run))
		}
	}

	cells := config.GridColumns() * config.GridRows()
	if config.InitialLength >= cells/2 {
		warnings = append(warnings, fmt.Sprintf(
			"initial length %d fills half the board (%d cells); little room for food", config.InitialLength, cells))
	}

	return warnings
}

// main scans the configs directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := flag.String("config-dir", "../configs", "Directory containing board configurations")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", *configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, note := range result.Notes {
				fmt.Println("  " + note)
			}
			for _, warning := range result.Warnings {
				fmt.Println("  ⚠️  " + warning)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, note := range result.Notes {
				fmt.Println("  ❌ " + note)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
