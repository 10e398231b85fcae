// Command analyze prints quick, human-readable heuristics about board
// configuration files in the project's configs directory. It summarizes
// geometry, the starting snake, and boundary policy, and highlights boards
// where the opening moves are dangerous (gate on the start line, short runway
// to a lethal wall).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gridgames/snake-game/game/engine"
)

func main() {
	configDir := flag.String("config-dir", "configs", "Directory containing board configurations")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*configDir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No config files found in %s\n", *configDir)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzeConfig(file)
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Board: %dx%d px, %dpx cells (%dx%d grid, %d cells)\n",
		config.Width, config.Height, config.CellSize,
		config.GridColumns(), config.GridRows(), config.GridColumns()*config.GridRows())
	fmt.Printf("Start: (%d,%d) heading %s, length %d\n",
		config.StartX, config.StartY, config.StartHeading, config.InitialLength)
	fmt.Printf("Boundary: %s\n", config.BoundaryMode)
	if config.BoundaryMode == engine.BoundaryRail {
		fmt.Printf("Gate: row %d (cell %d), col %d (cell %d)\n",
			config.GateRow, config.GateRow/config.CellSize,
			config.GateCol, config.GateCol/config.CellSize)
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		fmt.Printf("⚠️  INVALID: %v\n", err)
		return
	}

	// Runway: cells the snake can travel from the start before leaving the board
	runway := openingRunway(&config)
	fmt.Printf("Opening runway: %d cells\n", runway)

	switch config.BoundaryMode {
	case engine.BoundaryWall:
		if runway <= 3 {
			fmt.Printf("⚠️  WARNING: only %d cells before a lethal wall; players must turn immediately\n", runway)
		} else {
			fmt.Printf("✅ Comfortable runway before the wall\n")
		}
	case engine.BoundaryRail:
		if onGateLine(&config) {
			fmt.Printf("⚠️  WARNING: the start cell sits on the gate line; a straight run off the board is fatal\n")
		} else {
			fmt.Printf("✅ Start cell is off the gate line\n")
		}
	case engine.BoundaryWrap:
		fmt.Printf("✅ Wrapping board; only self collisions end the game\n")
	}

	free := engine.FreeCellCount(engine.InitGameStateFromConfig(&config), &config)
	fmt.Printf("Free cells at start: %d\n", free)
}

// openingRunway counts the cells between the head and the boundary along the
// start heading, including the head's own cell.
func openingRunway(config *engine.GameConfig) int {
	head := engine.InitGameStateFromConfig(config).Head()
	switch config.StartHeading {
	case engine.Right:
		return (config.Width - head.X) / config.CellSize
	case engine.Left:
		return head.X/config.CellSize + 1
	case engine.Down:
		return (config.Height - head.Y) / config.CellSize
	case engine.Up:
		return head.Y/config.CellSize + 1
	}
	return 0
}

// onGateLine reports whether the start cell shares a row or column with the gate.
func onGateLine(config *engine.GameConfig) bool {
	return config.StartY == config.GateRow || config.StartX == config.GateCol
}
